package lurk

import (
	"context"
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/rpcjson"
)

// LurkApp defines what the service layer needs from the lurk application
type LurkApp interface {
	BeginLurk(ctx context.Context, req BeginLurkRequest) (*models.LurkSession, error)
	EndLurk(ctx context.Context, viewerID uuid.UUID) error
	Status(ctx context.Context, viewerID uuid.UUID) (*LurkStatus, error)
}

// Service implements the LurkService RPC interface
type Service struct {
	app LurkApp
}

// NewService creates a new lurk service
func NewService(app LurkApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the LurkServiceHandler interface
var _ weblurkv1.LurkServiceHandler = (*Service)(nil)

// BeginLurk starts or hands over a lurk session
func (s *Service) BeginLurk(ctx context.Context, req *connect.Request[weblurkv1.BeginLurkRequest]) (*connect.Response[weblurkv1.BeginLurkResponse], error) {
	viewerID, err := parseViewerID(req.Msg.ViewerID)
	if err != nil {
		return nil, rpcjson.InvalidArgument(err)
	}

	clientInfo := req.Msg.ClientInfo
	if len(clientInfo) == 0 {
		clientInfo = clientInfoFromHeaders(req)
	}

	session, err := s.app.BeginLurk(ctx, BeginLurkRequest{
		ViewerID:   viewerID,
		WindowMode: models.WindowMode(req.Msg.WindowMode),
		ClientInfo: clientInfo,
	})
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.BeginLurkResponse{
		Session: weblurkv1.LurkSessionFromModel(session),
	}), nil
}

// EndLurk closes the viewer's lurk session
func (s *Service) EndLurk(ctx context.Context, req *connect.Request[weblurkv1.EndLurkRequest]) (*connect.Response[weblurkv1.EndLurkResponse], error) {
	viewerID, err := parseViewerID(req.Msg.ViewerID)
	if err != nil {
		return nil, rpcjson.InvalidArgument(err)
	}

	if err := s.app.EndLurk(ctx, viewerID); err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.EndLurkResponse{Success: true}), nil
}

// GetStatus reports whether the viewer is lurking
func (s *Service) GetStatus(ctx context.Context, req *connect.Request[weblurkv1.GetStatusRequest]) (*connect.Response[weblurkv1.GetStatusResponse], error) {
	viewerID, err := parseViewerID(req.Msg.ViewerID)
	if err != nil {
		return nil, rpcjson.InvalidArgument(err)
	}

	status, err := s.app.Status(ctx, viewerID)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.GetStatusResponse{
		Lurking: status.Lurking,
		Viewer:  weblurkv1.ViewerFromModel(status.Viewer),
		Session: weblurkv1.LurkSessionFromModel(status.Session),
	}), nil
}

func parseViewerID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid viewer id %q: %w", raw, err)
	}
	return id, nil
}

// clientInfoFromHeaders records where a session was opened from when the
// client sent no metadata of its own.
func clientInfoFromHeaders[T any](req *connect.Request[T]) json.RawMessage {
	info := map[string]string{}
	if ua := req.Header().Get("User-Agent"); ua != "" {
		info["user_agent"] = ua
	}
	if addr := req.Peer().Addr; addr != "" {
		info["remote_addr"] = addr
	}
	if len(info) == 0 {
		return nil
	}
	data, err := json.Marshal(info)
	if err != nil {
		return nil
	}
	return data
}
