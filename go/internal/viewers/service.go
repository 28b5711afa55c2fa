package viewers

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/rpcjson"
)

// ViewersApp defines what the service layer needs from the viewers application
type ViewersApp interface {
	RegisterNick(ctx context.Context, nick string) (*models.Viewer, error)
	GetViewer(ctx context.Context, id uuid.UUID) (*models.Viewer, error)
	ListOnline(ctx context.Context) ([]models.Viewer, error)
}

// Service implements the ViewerService RPC interface
type Service struct {
	app ViewersApp
}

// NewService creates a new viewers service
func NewService(app ViewersApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the ViewerServiceHandler interface
var _ weblurkv1.ViewerServiceHandler = (*Service)(nil)

// RegisterNick finds or creates the viewer for a channel nick
func (s *Service) RegisterNick(ctx context.Context, req *connect.Request[weblurkv1.RegisterNickRequest]) (*connect.Response[weblurkv1.RegisterNickResponse], error) {
	viewer, err := s.app.RegisterNick(ctx, req.Msg.Nick)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.RegisterNickResponse{
		Viewer: weblurkv1.ViewerFromModel(viewer),
	}), nil
}

// GetViewer retrieves a viewer by ID
func (s *Service) GetViewer(ctx context.Context, req *connect.Request[weblurkv1.GetViewerRequest]) (*connect.Response[weblurkv1.GetViewerResponse], error) {
	id, err := uuid.Parse(req.Msg.ID)
	if err != nil {
		return nil, rpcjson.InvalidArgument(err)
	}

	viewer, err := s.app.GetViewer(ctx, id)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.GetViewerResponse{
		Viewer: weblurkv1.ViewerFromModel(viewer),
	}), nil
}

// ListOnline lists viewers currently marked online
func (s *Service) ListOnline(ctx context.Context, req *connect.Request[weblurkv1.ListOnlineRequest]) (*connect.Response[weblurkv1.ListOnlineResponse], error) {
	viewers, err := s.app.ListOnline(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.ListOnlineResponse{
		Viewers: weblurkv1.ViewersFromModels(viewers),
	}), nil
}
