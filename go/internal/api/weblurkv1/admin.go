package weblurkv1

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// AdminServiceName is the fully-qualified name of the AdminService
	AdminServiceName = "weblurk.v1.AdminService"

	AdminServiceWhoAmIProcedure         = "/weblurk.v1.AdminService/WhoAmI"
	AdminServiceCreateAdminProcedure    = "/weblurk.v1.AdminService/CreateAdmin"
	AdminServiceListAdminsProcedure     = "/weblurk.v1.AdminService/ListAdmins"
	AdminServiceDeleteAdminProcedure    = "/weblurk.v1.AdminService/DeleteAdmin"
	AdminServiceChangePasswordProcedure = "/weblurk.v1.AdminService/ChangePassword"
)

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	Admin *Administrator `json:"admin"`
}

type CreateAdminRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type CreateAdminResponse struct {
	Admin *Administrator `json:"admin"`
}

type ListAdminsRequest struct{}

type ListAdminsResponse struct {
	Admins []*Administrator `json:"admins"`
}

type DeleteAdminRequest struct {
	ID string `json:"id"`
}

type DeleteAdminResponse struct {
	Success bool `json:"success"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type ChangePasswordResponse struct {
	Success bool `json:"success"`
}

// AdminServiceHandler is implemented by the admins service
type AdminServiceHandler interface {
	WhoAmI(context.Context, *connect.Request[WhoAmIRequest]) (*connect.Response[WhoAmIResponse], error)
	CreateAdmin(context.Context, *connect.Request[CreateAdminRequest]) (*connect.Response[CreateAdminResponse], error)
	ListAdmins(context.Context, *connect.Request[ListAdminsRequest]) (*connect.Response[ListAdminsResponse], error)
	DeleteAdmin(context.Context, *connect.Request[DeleteAdminRequest]) (*connect.Response[DeleteAdminResponse], error)
	ChangePassword(context.Context, *connect.Request[ChangePasswordRequest]) (*connect.Response[ChangePasswordResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler serving every AdminService procedure
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, AdminServiceWhoAmIProcedure, svc.WhoAmI, opts)
	handle(mux, AdminServiceCreateAdminProcedure, svc.CreateAdmin, opts)
	handle(mux, AdminServiceListAdminsProcedure, svc.ListAdmins, opts)
	handle(mux, AdminServiceDeleteAdminProcedure, svc.DeleteAdmin, opts)
	handle(mux, AdminServiceChangePasswordProcedure, svc.ChangePassword, opts)
	return servicePath(AdminServiceName), mux
}

// AdminServiceClient calls AdminService procedures
type AdminServiceClient interface {
	WhoAmI(context.Context, *connect.Request[WhoAmIRequest]) (*connect.Response[WhoAmIResponse], error)
	CreateAdmin(context.Context, *connect.Request[CreateAdminRequest]) (*connect.Response[CreateAdminResponse], error)
	ListAdmins(context.Context, *connect.Request[ListAdminsRequest]) (*connect.Response[ListAdminsResponse], error)
	DeleteAdmin(context.Context, *connect.Request[DeleteAdminRequest]) (*connect.Response[DeleteAdminResponse], error)
	ChangePassword(context.Context, *connect.Request[ChangePasswordRequest]) (*connect.Response[ChangePasswordResponse], error)
}

// NewAdminServiceClient creates an AdminService client for baseURL
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	opts = clientOptions(opts)
	return &adminServiceClient{
		whoAmI:         newClient[WhoAmIRequest, WhoAmIResponse](httpClient, baseURL, AdminServiceWhoAmIProcedure, opts),
		createAdmin:    newClient[CreateAdminRequest, CreateAdminResponse](httpClient, baseURL, AdminServiceCreateAdminProcedure, opts),
		listAdmins:     newClient[ListAdminsRequest, ListAdminsResponse](httpClient, baseURL, AdminServiceListAdminsProcedure, opts),
		deleteAdmin:    newClient[DeleteAdminRequest, DeleteAdminResponse](httpClient, baseURL, AdminServiceDeleteAdminProcedure, opts),
		changePassword: newClient[ChangePasswordRequest, ChangePasswordResponse](httpClient, baseURL, AdminServiceChangePasswordProcedure, opts),
	}
}

type adminServiceClient struct {
	whoAmI         *connect.Client[WhoAmIRequest, WhoAmIResponse]
	createAdmin    *connect.Client[CreateAdminRequest, CreateAdminResponse]
	listAdmins     *connect.Client[ListAdminsRequest, ListAdminsResponse]
	deleteAdmin    *connect.Client[DeleteAdminRequest, DeleteAdminResponse]
	changePassword *connect.Client[ChangePasswordRequest, ChangePasswordResponse]
}

func (c *adminServiceClient) WhoAmI(ctx context.Context, req *connect.Request[WhoAmIRequest]) (*connect.Response[WhoAmIResponse], error) {
	return c.whoAmI.CallUnary(ctx, req)
}

func (c *adminServiceClient) CreateAdmin(ctx context.Context, req *connect.Request[CreateAdminRequest]) (*connect.Response[CreateAdminResponse], error) {
	return c.createAdmin.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListAdmins(ctx context.Context, req *connect.Request[ListAdminsRequest]) (*connect.Response[ListAdminsResponse], error) {
	return c.listAdmins.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeleteAdmin(ctx context.Context, req *connect.Request[DeleteAdminRequest]) (*connect.Response[DeleteAdminResponse], error) {
	return c.deleteAdmin.CallUnary(ctx, req)
}

func (c *adminServiceClient) ChangePassword(ctx context.Context, req *connect.Request[ChangePasswordRequest]) (*connect.Response[ChangePasswordResponse], error) {
	return c.changePassword.CallUnary(ctx, req)
}
