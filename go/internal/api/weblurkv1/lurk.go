package weblurkv1

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// LurkServiceName is the fully-qualified name of the LurkService
	LurkServiceName = "weblurk.v1.LurkService"

	LurkServiceBeginLurkProcedure = "/weblurk.v1.LurkService/BeginLurk"
	LurkServiceEndLurkProcedure   = "/weblurk.v1.LurkService/EndLurk"
	LurkServiceGetStatusProcedure = "/weblurk.v1.LurkService/GetStatus"
)

type BeginLurkRequest struct {
	ViewerID   string          `json:"viewer_id"`
	WindowMode string          `json:"window_mode,omitempty"`
	ClientInfo json.RawMessage `json:"client_info,omitempty"`
}

type BeginLurkResponse struct {
	Session *LurkSession `json:"session"`
}

type EndLurkRequest struct {
	ViewerID string `json:"viewer_id"`
}

type EndLurkResponse struct {
	Success bool `json:"success"`
}

type GetStatusRequest struct {
	ViewerID string `json:"viewer_id"`
}

type GetStatusResponse struct {
	Lurking bool         `json:"lurking"`
	Viewer  *Viewer      `json:"viewer"`
	Session *LurkSession `json:"session,omitempty"`
}

// LurkServiceHandler is implemented by the lurk service
type LurkServiceHandler interface {
	BeginLurk(context.Context, *connect.Request[BeginLurkRequest]) (*connect.Response[BeginLurkResponse], error)
	EndLurk(context.Context, *connect.Request[EndLurkRequest]) (*connect.Response[EndLurkResponse], error)
	GetStatus(context.Context, *connect.Request[GetStatusRequest]) (*connect.Response[GetStatusResponse], error)
}

// NewLurkServiceHandler builds an HTTP handler serving every LurkService
// procedure and returns the path to mount it on.
func NewLurkServiceHandler(svc LurkServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, LurkServiceBeginLurkProcedure, svc.BeginLurk, opts)
	handle(mux, LurkServiceEndLurkProcedure, svc.EndLurk, opts)
	handle(mux, LurkServiceGetStatusProcedure, svc.GetStatus, opts)
	return servicePath(LurkServiceName), mux
}

// LurkServiceClient calls LurkService procedures
type LurkServiceClient interface {
	BeginLurk(context.Context, *connect.Request[BeginLurkRequest]) (*connect.Response[BeginLurkResponse], error)
	EndLurk(context.Context, *connect.Request[EndLurkRequest]) (*connect.Response[EndLurkResponse], error)
	GetStatus(context.Context, *connect.Request[GetStatusRequest]) (*connect.Response[GetStatusResponse], error)
}

// NewLurkServiceClient creates a LurkService client for baseURL
func NewLurkServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LurkServiceClient {
	opts = clientOptions(opts)
	return &lurkServiceClient{
		beginLurk: newClient[BeginLurkRequest, BeginLurkResponse](httpClient, baseURL, LurkServiceBeginLurkProcedure, opts),
		endLurk:   newClient[EndLurkRequest, EndLurkResponse](httpClient, baseURL, LurkServiceEndLurkProcedure, opts),
		getStatus: newClient[GetStatusRequest, GetStatusResponse](httpClient, baseURL, LurkServiceGetStatusProcedure, opts),
	}
}

type lurkServiceClient struct {
	beginLurk *connect.Client[BeginLurkRequest, BeginLurkResponse]
	endLurk   *connect.Client[EndLurkRequest, EndLurkResponse]
	getStatus *connect.Client[GetStatusRequest, GetStatusResponse]
}

func (c *lurkServiceClient) BeginLurk(ctx context.Context, req *connect.Request[BeginLurkRequest]) (*connect.Response[BeginLurkResponse], error) {
	return c.beginLurk.CallUnary(ctx, req)
}

func (c *lurkServiceClient) EndLurk(ctx context.Context, req *connect.Request[EndLurkRequest]) (*connect.Response[EndLurkResponse], error) {
	return c.endLurk.CallUnary(ctx, req)
}

func (c *lurkServiceClient) GetStatus(ctx context.Context, req *connect.Request[GetStatusRequest]) (*connect.Response[GetStatusResponse], error) {
	return c.getStatus.CallUnary(ctx, req)
}
