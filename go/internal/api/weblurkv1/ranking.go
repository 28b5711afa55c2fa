package weblurkv1

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// RankingServiceName is the fully-qualified name of the RankingService
	RankingServiceName = "weblurk.v1.RankingService"

	RankingServiceListRankingProcedure  = "/weblurk.v1.RankingService/ListRanking"
	RankingServiceResetRankingProcedure = "/weblurk.v1.RankingService/ResetRanking"
)

type ListRankingRequest struct{}

type ListRankingResponse struct {
	Entries []*RankingEntry `json:"entries"`
}

type ResetRankingRequest struct{}

type ResetRankingResponse struct {
	ViewersReset int64 `json:"viewers_reset"`
}

// RankingServiceHandler is implemented by the ranking service
type RankingServiceHandler interface {
	ListRanking(context.Context, *connect.Request[ListRankingRequest]) (*connect.Response[ListRankingResponse], error)
	ResetRanking(context.Context, *connect.Request[ResetRankingRequest]) (*connect.Response[ResetRankingResponse], error)
}

// NewRankingServiceHandler builds an HTTP handler serving every RankingService procedure
func NewRankingServiceHandler(svc RankingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, RankingServiceListRankingProcedure, svc.ListRanking, opts)
	handle(mux, RankingServiceResetRankingProcedure, svc.ResetRanking, opts)
	return servicePath(RankingServiceName), mux
}

// RankingServiceClient calls RankingService procedures
type RankingServiceClient interface {
	ListRanking(context.Context, *connect.Request[ListRankingRequest]) (*connect.Response[ListRankingResponse], error)
	ResetRanking(context.Context, *connect.Request[ResetRankingRequest]) (*connect.Response[ResetRankingResponse], error)
}

// NewRankingServiceClient creates a RankingService client for baseURL
func NewRankingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RankingServiceClient {
	opts = clientOptions(opts)
	return &rankingServiceClient{
		listRanking:  newClient[ListRankingRequest, ListRankingResponse](httpClient, baseURL, RankingServiceListRankingProcedure, opts),
		resetRanking: newClient[ResetRankingRequest, ResetRankingResponse](httpClient, baseURL, RankingServiceResetRankingProcedure, opts),
	}
}

type rankingServiceClient struct {
	listRanking  *connect.Client[ListRankingRequest, ListRankingResponse]
	resetRanking *connect.Client[ResetRankingRequest, ResetRankingResponse]
}

func (c *rankingServiceClient) ListRanking(ctx context.Context, req *connect.Request[ListRankingRequest]) (*connect.Response[ListRankingResponse], error) {
	return c.listRanking.CallUnary(ctx, req)
}

func (c *rankingServiceClient) ResetRanking(ctx context.Context, req *connect.Request[ResetRankingRequest]) (*connect.Response[ResetRankingResponse], error) {
	return c.resetRanking.CallUnary(ctx, req)
}
