package admins

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/rpcjson"
)

// AdminsApp defines what the service layer needs from the admins application
type AdminsApp interface {
	CreateAdmin(ctx context.Context, login, password string) (*models.Administrator, error)
	ListAdmins(ctx context.Context) ([]models.Administrator, error)
	DeleteAdmin(ctx context.Context, actor *models.Administrator, id uuid.UUID) error
	ChangePassword(ctx context.Context, actor *models.Administrator, newPassword string) error
}

// Service implements the AdminService RPC interface. Every procedure requires
// an administrator authenticated by Middleware.
type Service struct {
	app AdminsApp
}

// NewService creates a new admins service
func NewService(app AdminsApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the AdminServiceHandler interface
var _ weblurkv1.AdminServiceHandler = (*Service)(nil)

// WhoAmI returns the calling administrator
func (s *Service) WhoAmI(ctx context.Context, req *connect.Request[weblurkv1.WhoAmIRequest]) (*connect.Response[weblurkv1.WhoAmIResponse], error) {
	admin, err := RequireAdmin(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.WhoAmIResponse{
		Admin: weblurkv1.AdministratorFromModel(admin),
	}), nil
}

// CreateAdmin adds an administrator
func (s *Service) CreateAdmin(ctx context.Context, req *connect.Request[weblurkv1.CreateAdminRequest]) (*connect.Response[weblurkv1.CreateAdminResponse], error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, rpcjson.Error(err)
	}

	admin, err := s.app.CreateAdmin(ctx, req.Msg.Login, req.Msg.Password)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.CreateAdminResponse{
		Admin: weblurkv1.AdministratorFromModel(admin),
	}), nil
}

// ListAdmins lists administrators
func (s *Service) ListAdmins(ctx context.Context, req *connect.Request[weblurkv1.ListAdminsRequest]) (*connect.Response[weblurkv1.ListAdminsResponse], error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, rpcjson.Error(err)
	}

	admins, err := s.app.ListAdmins(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	out := make([]*weblurkv1.Administrator, 0, len(admins))
	for i := range admins {
		out = append(out, weblurkv1.AdministratorFromModel(&admins[i]))
	}
	return connect.NewResponse(&weblurkv1.ListAdminsResponse{Admins: out}), nil
}

// DeleteAdmin removes an administrator
func (s *Service) DeleteAdmin(ctx context.Context, req *connect.Request[weblurkv1.DeleteAdminRequest]) (*connect.Response[weblurkv1.DeleteAdminResponse], error) {
	actor, err := RequireAdmin(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	id, err := uuid.Parse(req.Msg.ID)
	if err != nil {
		return nil, rpcjson.InvalidArgument(err)
	}

	if err := s.app.DeleteAdmin(ctx, actor, id); err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.DeleteAdminResponse{Success: true}), nil
}

// ChangePassword replaces the calling administrator's password
func (s *Service) ChangePassword(ctx context.Context, req *connect.Request[weblurkv1.ChangePasswordRequest]) (*connect.Response[weblurkv1.ChangePasswordResponse], error) {
	actor, err := RequireAdmin(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	if err := s.app.ChangePassword(ctx, actor, req.Msg.NewPassword); err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.ChangePasswordResponse{Success: true}), nil
}
