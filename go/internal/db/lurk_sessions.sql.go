package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const closeActiveLurkSession = `-- name: CloseActiveLurkSession :one
UPDATE lurk_sessions
SET active = FALSE,
    ended_at = $2
WHERE viewer_id = $1 AND active
RETURNING id, viewer_id, window_mode, active, started_at, ended_at, points_generated, client_info
`

type CloseActiveLurkSessionParams struct {
	ViewerID uuid.UUID `json:"viewer_id"`
	EndedAt  time.Time `json:"ended_at"`
}

func (q *Queries) CloseActiveLurkSession(ctx context.Context, arg CloseActiveLurkSessionParams) (LurkSession, error) {
	row := q.db.QueryRowContext(ctx, closeActiveLurkSession, arg.ViewerID, arg.EndedAt)
	var i LurkSession
	err := row.Scan(
		&i.ID,
		&i.ViewerID,
		&i.WindowMode,
		&i.Active,
		&i.StartedAt,
		&i.EndedAt,
		&i.PointsGenerated,
		&i.ClientInfo,
	)
	return i, err
}

const createLurkSession = `-- name: CreateLurkSession :one
INSERT INTO lurk_sessions (id, viewer_id, window_mode, active, started_at, client_info)
VALUES ($1, $2, $3, TRUE, $4, $5)
RETURNING id, viewer_id, window_mode, active, started_at, ended_at, points_generated, client_info
`

type CreateLurkSessionParams struct {
	ID         uuid.UUID             `json:"id"`
	ViewerID   uuid.UUID             `json:"viewer_id"`
	WindowMode string                `json:"window_mode"`
	StartedAt  time.Time             `json:"started_at"`
	ClientInfo pqtype.NullRawMessage `json:"client_info"`
}

func (q *Queries) CreateLurkSession(ctx context.Context, arg CreateLurkSessionParams) (LurkSession, error) {
	row := q.db.QueryRowContext(ctx, createLurkSession,
		arg.ID,
		arg.ViewerID,
		arg.WindowMode,
		arg.StartedAt,
		arg.ClientInfo,
	)
	var i LurkSession
	err := row.Scan(
		&i.ID,
		&i.ViewerID,
		&i.WindowMode,
		&i.Active,
		&i.StartedAt,
		&i.EndedAt,
		&i.PointsGenerated,
		&i.ClientInfo,
	)
	return i, err
}

const getActiveLurkSession = `-- name: GetActiveLurkSession :one
SELECT id, viewer_id, window_mode, active, started_at, ended_at, points_generated, client_info
FROM lurk_sessions
WHERE viewer_id = $1 AND active
`

func (q *Queries) GetActiveLurkSession(ctx context.Context, viewerID uuid.UUID) (LurkSession, error) {
	row := q.db.QueryRowContext(ctx, getActiveLurkSession, viewerID)
	var i LurkSession
	err := row.Scan(
		&i.ID,
		&i.ViewerID,
		&i.WindowMode,
		&i.Active,
		&i.StartedAt,
		&i.EndedAt,
		&i.PointsGenerated,
		&i.ClientInfo,
	)
	return i, err
}

const incrementActiveSessionPoints = `-- name: IncrementActiveSessionPoints :one
UPDATE lurk_sessions
SET points_generated = points_generated + 1
WHERE viewer_id = $1 AND active
RETURNING id, viewer_id, window_mode, active, started_at, ended_at, points_generated, client_info
`

func (q *Queries) IncrementActiveSessionPoints(ctx context.Context, viewerID uuid.UUID) (LurkSession, error) {
	row := q.db.QueryRowContext(ctx, incrementActiveSessionPoints, viewerID)
	var i LurkSession
	err := row.Scan(
		&i.ID,
		&i.ViewerID,
		&i.WindowMode,
		&i.Active,
		&i.StartedAt,
		&i.EndedAt,
		&i.PointsGenerated,
		&i.ClientInfo,
	)
	return i, err
}
