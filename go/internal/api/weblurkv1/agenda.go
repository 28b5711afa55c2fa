package weblurkv1

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// AgendaServiceName is the fully-qualified name of the AgendaService
	AgendaServiceName = "weblurk.v1.AgendaService"

	AgendaServiceGetTodayProcedure    = "/weblurk.v1.AgendaService/GetToday"
	AgendaServiceListAgendaProcedure  = "/weblurk.v1.AgendaService/ListAgenda"
	AgendaServiceClearAgendaProcedure = "/weblurk.v1.AgendaService/ClearAgenda"
)

type GetTodayRequest struct{}

type GetTodayResponse struct {
	Date    string           `json:"date"`
	Entries []*ScheduleEntry `json:"entries"`
}

type ListAgendaRequest struct {
	// Date filters to one day (YYYY-MM-DD); empty lists everything
	Date string `json:"date,omitempty"`
}

type ListAgendaResponse struct {
	Entries []*ScheduleEntry `json:"entries"`
}

type ClearAgendaRequest struct{}

type ClearAgendaResponse struct {
	Deleted int64 `json:"deleted"`
}

// AgendaServiceHandler is implemented by the agenda service
type AgendaServiceHandler interface {
	GetToday(context.Context, *connect.Request[GetTodayRequest]) (*connect.Response[GetTodayResponse], error)
	ListAgenda(context.Context, *connect.Request[ListAgendaRequest]) (*connect.Response[ListAgendaResponse], error)
	ClearAgenda(context.Context, *connect.Request[ClearAgendaRequest]) (*connect.Response[ClearAgendaResponse], error)
}

// NewAgendaServiceHandler builds an HTTP handler serving every AgendaService procedure
func NewAgendaServiceHandler(svc AgendaServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, AgendaServiceGetTodayProcedure, svc.GetToday, opts)
	handle(mux, AgendaServiceListAgendaProcedure, svc.ListAgenda, opts)
	handle(mux, AgendaServiceClearAgendaProcedure, svc.ClearAgenda, opts)
	return servicePath(AgendaServiceName), mux
}

// AgendaServiceClient calls AgendaService procedures
type AgendaServiceClient interface {
	GetToday(context.Context, *connect.Request[GetTodayRequest]) (*connect.Response[GetTodayResponse], error)
	ListAgenda(context.Context, *connect.Request[ListAgendaRequest]) (*connect.Response[ListAgendaResponse], error)
	ClearAgenda(context.Context, *connect.Request[ClearAgendaRequest]) (*connect.Response[ClearAgendaResponse], error)
}

// NewAgendaServiceClient creates an AgendaService client for baseURL
func NewAgendaServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AgendaServiceClient {
	opts = clientOptions(opts)
	return &agendaServiceClient{
		getToday:    newClient[GetTodayRequest, GetTodayResponse](httpClient, baseURL, AgendaServiceGetTodayProcedure, opts),
		listAgenda:  newClient[ListAgendaRequest, ListAgendaResponse](httpClient, baseURL, AgendaServiceListAgendaProcedure, opts),
		clearAgenda: newClient[ClearAgendaRequest, ClearAgendaResponse](httpClient, baseURL, AgendaServiceClearAgendaProcedure, opts),
	}
}

type agendaServiceClient struct {
	getToday    *connect.Client[GetTodayRequest, GetTodayResponse]
	listAgenda  *connect.Client[ListAgendaRequest, ListAgendaResponse]
	clearAgenda *connect.Client[ClearAgendaRequest, ClearAgendaResponse]
}

func (c *agendaServiceClient) GetToday(ctx context.Context, req *connect.Request[GetTodayRequest]) (*connect.Response[GetTodayResponse], error) {
	return c.getToday.CallUnary(ctx, req)
}

func (c *agendaServiceClient) ListAgenda(ctx context.Context, req *connect.Request[ListAgendaRequest]) (*connect.Response[ListAgendaResponse], error) {
	return c.listAgenda.CallUnary(ctx, req)
}

func (c *agendaServiceClient) ClearAgenda(ctx context.Context, req *connect.Request[ClearAgendaRequest]) (*connect.Response[ClearAgendaResponse], error) {
	return c.clearAgenda.CallUnary(ctx, req)
}
