package ranking

import (
	"context"
	"fmt"

	"github.com/mcdev12/weblurk/go/internal/db"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	ListViewersByPoints(ctx context.Context) ([]db.Viewer, error)
	ResetAllPoints(ctx context.Context) (int64, error)
}

// Repository implements ranking data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new ranking repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

var _ RankingRepository = (*Repository)(nil)

// ListViewersByPoints returns every viewer, most points first
func (r *Repository) ListViewersByPoints(ctx context.Context) ([]models.Viewer, error) {
	rows, err := r.queries.ListViewersByPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list viewers by points: %w", sqlutil.Classify(err))
	}
	return db.ViewersToModels(rows), nil
}

// ResetAllPoints zeroes every balance and returns how many viewers changed
func (r *Repository) ResetAllPoints(ctx context.Context) (int64, error) {
	n, err := r.queries.ResetAllPoints(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset points: %w", sqlutil.Classify(err))
	}
	return n, nil
}
