// Package weblurkv1 declares the weblurk.v1 RPC surface: request and response
// messages, procedure names, handler constructors and clients. Messages are
// plain structs carried by the rpcjson codec.
package weblurkv1

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/mcdev12/weblurk/go/internal/rpcjson"
)

// Viewer is the wire form of a viewer
type Viewer struct {
	ID             string    `json:"id"`
	ChannelNick    string    `json:"channel_nick"`
	Points         int64     `json:"points"`
	Online         bool      `json:"online"`
	WindowMode     string    `json:"window_mode"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// LurkSession is the wire form of a lurk session
type LurkSession struct {
	ID              string     `json:"id"`
	ViewerID        string     `json:"viewer_id"`
	WindowMode      string     `json:"window_mode"`
	Active          bool       `json:"active"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	PointsGenerated int64      `json:"points_generated"`
}

// ScheduleEntry is the wire form of an agenda entry
type ScheduleEntry struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PlatformLink string `json:"platform_link"`
	ChannelName  string `json:"channel_name"`
}

// Administrator is the wire form of an administrator. Password hashes never leave the server.
type Administrator struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Creator   bool      `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
}

// RankingEntry is one row of the points ranking
type RankingEntry struct {
	Position    int     `json:"position"`
	ChannelNick string  `json:"channel_nick"`
	Points      int64   `json:"points"`
	Average     float64 `json:"average"`
}

func handle[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, baseURL+procedure, opts...)
}

func servicePath(name string) string {
	return "/" + name + "/"
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return rpcjson.HandlerOptions(opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return rpcjson.ClientOptions(opts...)
}
