package viewers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/db"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateViewer(ctx context.Context, arg db.CreateViewerParams) (db.Viewer, error)
	GetViewer(ctx context.Context, id uuid.UUID) (db.Viewer, error)
	GetViewerByNick(ctx context.Context, channelNick string) (db.Viewer, error)
	ListOnlineViewers(ctx context.Context) ([]db.Viewer, error)
}

// Repository implements viewer data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new viewers repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

var _ ViewersRepository = (*Repository)(nil)

// CreateViewer inserts a viewer; a taken nick yields models.ErrAlreadyExists
func (r *Repository) CreateViewer(ctx context.Context, nick string, at time.Time) (*models.Viewer, error) {
	viewer, err := r.queries.CreateViewer(ctx, db.CreateViewerParams{
		ID:          uuid.New(),
		ChannelNick: nick,
		CreatedAt:   at,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create viewer: %w", sqlutil.Classify(err))
	}
	return viewer.ToModel(), nil
}

// GetViewer retrieves a viewer by ID
func (r *Repository) GetViewer(ctx context.Context, id uuid.UUID) (*models.Viewer, error) {
	viewer, err := r.queries.GetViewer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", sqlutil.Classify(err))
	}
	return viewer.ToModel(), nil
}

// GetViewerByNick retrieves a viewer by channel nick
func (r *Repository) GetViewerByNick(ctx context.Context, nick string) (*models.Viewer, error) {
	viewer, err := r.queries.GetViewerByNick(ctx, nick)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer by nick: %w", sqlutil.Classify(err))
	}
	return viewer.ToModel(), nil
}

// ListOnlineViewers returns online viewers ordered by nick
func (r *Repository) ListOnlineViewers(ctx context.Context) ([]models.Viewer, error) {
	rows, err := r.queries.ListOnlineViewers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list online viewers: %w", sqlutil.Classify(err))
	}
	return db.ViewersToModels(rows), nil
}
