package lurk

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/db"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/sqlutil"
)

// Repository implements lurk data access on Postgres. Every state change runs
// in one transaction holding the viewer row lock.
type Repository struct {
	conn    *sql.DB
	queries *db.Queries
}

// NewRepository creates a new lurk repository
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		conn:    conn,
		queries: db.New(conn),
	}
}

var _ LurkRepository = (*Repository)(nil)
var _ Accruer = (*Repository)(nil)

// BeginSession replaces the viewer's active session with a new one
func (r *Repository) BeginSession(ctx context.Context, viewerID uuid.UUID, mode models.WindowMode, clientInfo json.RawMessage, at time.Time) (*models.LurkSession, *models.LurkSession, error) {
	var session, replaced *models.LurkSession

	err := sqlutil.Run(ctx, r.conn, r.queries.WithTx, func(q *db.Queries) error {
		if _, err := q.GetViewerForUpdate(ctx, viewerID); err != nil {
			return fmt.Errorf("failed to lock viewer: %w", sqlutil.Classify(err))
		}

		closed, err := q.CloseActiveLurkSession(ctx, db.CloseActiveLurkSessionParams{
			ViewerID: viewerID,
			EndedAt:  at,
		})
		switch {
		case err == nil:
			replaced = closed.ToModel()
		case errors.Is(err, sql.ErrNoRows):
		default:
			return fmt.Errorf("failed to close active session: %w", sqlutil.Classify(err))
		}

		created, err := q.CreateLurkSession(ctx, db.CreateLurkSessionParams{
			ID:         uuid.New(),
			ViewerID:   viewerID,
			WindowMode: string(mode),
			StartedAt:  at,
			ClientInfo: sqlutil.ToNullRawMessage(clientInfo),
		})
		if err != nil {
			return fmt.Errorf("failed to create session: %w", sqlutil.Classify(err))
		}
		session = created.ToModel()

		if _, err := q.SetViewerOnline(ctx, db.SetViewerOnlineParams{
			ID:             viewerID,
			WindowMode:     string(mode),
			LastActivityAt: at,
		}); err != nil {
			return fmt.Errorf("failed to mark viewer online: %w", sqlutil.Classify(err))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return session, replaced, nil
}

// EndSession closes the active session, if any, and marks the viewer offline
func (r *Repository) EndSession(ctx context.Context, viewerID uuid.UUID, at time.Time) (*models.LurkSession, error) {
	var closed *models.LurkSession

	err := sqlutil.Run(ctx, r.conn, r.queries.WithTx, func(q *db.Queries) error {
		if _, err := q.GetViewerForUpdate(ctx, viewerID); err != nil {
			return fmt.Errorf("failed to lock viewer: %w", sqlutil.Classify(err))
		}

		row, err := q.CloseActiveLurkSession(ctx, db.CloseActiveLurkSessionParams{
			ViewerID: viewerID,
			EndedAt:  at,
		})
		switch {
		case err == nil:
			closed = row.ToModel()
		case errors.Is(err, sql.ErrNoRows):
		default:
			return fmt.Errorf("failed to close active session: %w", sqlutil.Classify(err))
		}

		if _, err := q.SetViewerOffline(ctx, db.SetViewerOfflineParams{
			ID:             viewerID,
			LastActivityAt: at,
		}); err != nil {
			return fmt.Errorf("failed to mark viewer offline: %w", sqlutil.Classify(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// GetLurkState returns the viewer and its active session, nil when there is none
func (r *Repository) GetLurkState(ctx context.Context, viewerID uuid.UUID) (*models.Viewer, *models.LurkSession, error) {
	viewer, err := r.queries.GetViewer(ctx, viewerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get viewer: %w", sqlutil.Classify(err))
	}

	row, err := r.queries.GetActiveLurkSession(ctx, viewerID)
	if errors.Is(err, sql.ErrNoRows) {
		return viewer.ToModel(), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get active session: %w", sqlutil.Classify(err))
	}
	return viewer.ToModel(), row.ToModel(), nil
}

// ListLurkingViewerIDs returns viewers that are online with an active session
func (r *Repository) ListLurkingViewerIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := r.queries.ListLurkingViewerIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lurking viewers: %w", sqlutil.Classify(err))
	}
	return ids, nil
}

// CreditTick adds one point to an online viewer and its active session. The
// online flag is read under the row lock, so a concurrent EndSession either
// commits first and prevents the credit or waits for it.
func (r *Repository) CreditTick(ctx context.Context, viewerID uuid.UUID, at time.Time) (*models.Credit, error) {
	var credit *models.Credit

	err := sqlutil.Run(ctx, r.conn, r.queries.WithTx, func(q *db.Queries) error {
		viewer, err := q.GetViewerForUpdate(ctx, viewerID)
		if err != nil {
			return fmt.Errorf("failed to lock viewer: %w", sqlutil.Classify(err))
		}

		credit = &models.Credit{ViewerID: viewerID, Points: viewer.Points, At: at}
		if !viewer.Online {
			return nil
		}

		updated, err := q.CreditViewer(ctx, db.CreditViewerParams{ID: viewerID, LastActivityAt: at})
		if err != nil {
			return fmt.Errorf("failed to credit viewer: %w", sqlutil.Classify(err))
		}
		credit.Credited = true
		credit.Points = updated.Points

		session, err := q.IncrementActiveSessionPoints(ctx, viewerID)
		switch {
		case err == nil:
			credit.SessionID = &session.ID
			credit.SessionPoints = session.PointsGenerated
		case errors.Is(err, sql.ErrNoRows):
		default:
			return fmt.Errorf("failed to credit session: %w", sqlutil.Classify(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return credit, nil
}
