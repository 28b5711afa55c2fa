package weblurkv1

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// ViewerServiceName is the fully-qualified name of the ViewerService
	ViewerServiceName = "weblurk.v1.ViewerService"

	ViewerServiceRegisterNickProcedure = "/weblurk.v1.ViewerService/RegisterNick"
	ViewerServiceGetViewerProcedure    = "/weblurk.v1.ViewerService/GetViewer"
	ViewerServiceListOnlineProcedure   = "/weblurk.v1.ViewerService/ListOnline"
)

type RegisterNickRequest struct {
	Nick string `json:"nick"`
}

type RegisterNickResponse struct {
	Viewer *Viewer `json:"viewer"`
}

type GetViewerRequest struct {
	ID string `json:"id"`
}

type GetViewerResponse struct {
	Viewer *Viewer `json:"viewer"`
}

type ListOnlineRequest struct{}

type ListOnlineResponse struct {
	Viewers []*Viewer `json:"viewers"`
}

// ViewerServiceHandler is implemented by the viewers service
type ViewerServiceHandler interface {
	RegisterNick(context.Context, *connect.Request[RegisterNickRequest]) (*connect.Response[RegisterNickResponse], error)
	GetViewer(context.Context, *connect.Request[GetViewerRequest]) (*connect.Response[GetViewerResponse], error)
	ListOnline(context.Context, *connect.Request[ListOnlineRequest]) (*connect.Response[ListOnlineResponse], error)
}

// NewViewerServiceHandler builds an HTTP handler serving every ViewerService procedure
func NewViewerServiceHandler(svc ViewerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, ViewerServiceRegisterNickProcedure, svc.RegisterNick, opts)
	handle(mux, ViewerServiceGetViewerProcedure, svc.GetViewer, opts)
	handle(mux, ViewerServiceListOnlineProcedure, svc.ListOnline, opts)
	return servicePath(ViewerServiceName), mux
}

// ViewerServiceClient calls ViewerService procedures
type ViewerServiceClient interface {
	RegisterNick(context.Context, *connect.Request[RegisterNickRequest]) (*connect.Response[RegisterNickResponse], error)
	GetViewer(context.Context, *connect.Request[GetViewerRequest]) (*connect.Response[GetViewerResponse], error)
	ListOnline(context.Context, *connect.Request[ListOnlineRequest]) (*connect.Response[ListOnlineResponse], error)
}

// NewViewerServiceClient creates a ViewerService client for baseURL
func NewViewerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ViewerServiceClient {
	opts = clientOptions(opts)
	return &viewerServiceClient{
		registerNick: newClient[RegisterNickRequest, RegisterNickResponse](httpClient, baseURL, ViewerServiceRegisterNickProcedure, opts),
		getViewer:    newClient[GetViewerRequest, GetViewerResponse](httpClient, baseURL, ViewerServiceGetViewerProcedure, opts),
		listOnline:   newClient[ListOnlineRequest, ListOnlineResponse](httpClient, baseURL, ViewerServiceListOnlineProcedure, opts),
	}
}

type viewerServiceClient struct {
	registerNick *connect.Client[RegisterNickRequest, RegisterNickResponse]
	getViewer    *connect.Client[GetViewerRequest, GetViewerResponse]
	listOnline   *connect.Client[ListOnlineRequest, ListOnlineResponse]
}

func (c *viewerServiceClient) RegisterNick(ctx context.Context, req *connect.Request[RegisterNickRequest]) (*connect.Response[RegisterNickResponse], error) {
	return c.registerNick.CallUnary(ctx, req)
}

func (c *viewerServiceClient) GetViewer(ctx context.Context, req *connect.Request[GetViewerRequest]) (*connect.Response[GetViewerResponse], error) {
	return c.getViewer.CallUnary(ctx, req)
}

func (c *viewerServiceClient) ListOnline(ctx context.Context, req *connect.Request[ListOnlineRequest]) (*connect.Response[ListOnlineResponse], error) {
	return c.listOnline.CallUnary(ctx, req)
}
