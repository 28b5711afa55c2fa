package agenda

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mcdev12/weblurk/go/internal/db"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/sqlutil"
)

// Repository implements agenda data access on Postgres
type Repository struct {
	conn    *sql.DB
	queries *db.Queries
}

// NewRepository creates a new agenda repository
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		conn:    conn,
		queries: db.New(conn),
	}
}

var _ AgendaRepository = (*Repository)(nil)

// ReplaceSchedule deletes the agenda and inserts entries in one transaction
func (r *Repository) ReplaceSchedule(ctx context.Context, entries []models.ScheduleEntry) error {
	return sqlutil.Run(ctx, r.conn, r.queries.WithTx, func(q *db.Queries) error {
		if _, err := q.DeleteAllScheduleEntries(ctx); err != nil {
			return fmt.Errorf("failed to clear agenda: %w", sqlutil.Classify(err))
		}
		for _, e := range entries {
			if err := q.CreateScheduleEntry(ctx, db.CreateScheduleEntryParams{
				ID:           e.ID,
				StartsAt:     e.StartsAt,
				PlatformLink: e.PlatformLink,
				ChannelName:  e.ChannelName,
				ImportedAt:   e.ImportedAt,
			}); err != nil {
				return fmt.Errorf("failed to insert agenda entry: %w", sqlutil.Classify(err))
			}
		}
		return nil
	})
}

// ListSchedule returns the agenda ordered by start
func (r *Repository) ListSchedule(ctx context.Context) ([]models.ScheduleEntry, error) {
	rows, err := r.queries.ListScheduleEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda: %w", sqlutil.Classify(err))
	}
	return scheduleToModels(rows), nil
}

// ListScheduleBetween returns entries starting in [from, to)
func (r *Repository) ListScheduleBetween(ctx context.Context, from, to time.Time) ([]models.ScheduleEntry, error) {
	rows, err := r.queries.ListScheduleEntriesBetween(ctx, db.ListScheduleEntriesBetweenParams{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda range: %w", sqlutil.Classify(err))
	}
	return scheduleToModels(rows), nil
}

// ClearSchedule deletes every agenda entry
func (r *Repository) ClearSchedule(ctx context.Context) (int64, error) {
	n, err := r.queries.DeleteAllScheduleEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear agenda: %w", sqlutil.Classify(err))
	}
	return n, nil
}

func scheduleToModels(rows []db.ScheduleEntry) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.ToModel())
	}
	return out
}
