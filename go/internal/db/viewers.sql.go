package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createViewer = `-- name: CreateViewer :one
INSERT INTO viewers (id, channel_nick, created_at, last_activity_at)
VALUES ($1, $2, $3, $3)
RETURNING id, channel_nick, points, online, window_mode, created_at, last_activity_at
`

type CreateViewerParams struct {
	ID          uuid.UUID `json:"id"`
	ChannelNick string    `json:"channel_nick"`
	CreatedAt   time.Time `json:"created_at"`
}

func (q *Queries) CreateViewer(ctx context.Context, arg CreateViewerParams) (Viewer, error) {
	row := q.db.QueryRowContext(ctx, createViewer, arg.ID, arg.ChannelNick, arg.CreatedAt)
	var i Viewer
	err := row.Scan(
		&i.ID,
		&i.ChannelNick,
		&i.Points,
		&i.Online,
		&i.WindowMode,
		&i.CreatedAt,
		&i.LastActivityAt,
	)
	return i, err
}

const creditViewer = `-- name: CreditViewer :one
UPDATE viewers
SET points = points + 1,
    last_activity_at = $2
WHERE id = $1
RETURNING id, channel_nick, points, online, window_mode, created_at, last_activity_at
`

type CreditViewerParams struct {
	ID             uuid.UUID `json:"id"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

func (q *Queries) CreditViewer(ctx context.Context, arg CreditViewerParams) (Viewer, error) {
	row := q.db.QueryRowContext(ctx, creditViewer, arg.ID, arg.LastActivityAt)
	var i Viewer
	err := row.Scan(
		&i.ID,
		&i.ChannelNick,
		&i.Points,
		&i.Online,
		&i.WindowMode,
		&i.CreatedAt,
		&i.LastActivityAt,
	)
	return i, err
}

const getViewer = `-- name: GetViewer :one
SELECT id, channel_nick, points, online, window_mode, created_at, last_activity_at
FROM viewers
WHERE id = $1
`

func (q *Queries) GetViewer(ctx context.Context, id uuid.UUID) (Viewer, error) {
	row := q.db.QueryRowContext(ctx, getViewer, id)
	var i Viewer
	err := row.Scan(
		&i.ID,
		&i.ChannelNick,
		&i.Points,
		&i.Online,
		&i.WindowMode,
		&i.CreatedAt,
		&i.LastActivityAt,
	)
	return i, err
}

const getViewerByNick = `-- name: GetViewerByNick :one
SELECT id, channel_nick, points, online, window_mode, created_at, last_activity_at
FROM viewers
WHERE channel_nick = $1
`

func (q *Queries) GetViewerByNick(ctx context.Context, channelNick string) (Viewer, error) {
	row := q.db.QueryRowContext(ctx, getViewerByNick, channelNick)
	var i Viewer
	err := row.Scan(
		&i.ID,
		&i.ChannelNick,
		&i.Points,
		&i.Online,
		&i.WindowMode,
		&i.CreatedAt,
		&i.LastActivityAt,
	)
	return i, err
}

const getViewerForUpdate = `-- name: GetViewerForUpdate :one
SELECT id, channel_nick, points, online, window_mode, created_at, last_activity_at
FROM viewers
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetViewerForUpdate(ctx context.Context, id uuid.UUID) (Viewer, error) {
	row := q.db.QueryRowContext(ctx, getViewerForUpdate, id)
	var i Viewer
	err := row.Scan(
		&i.ID,
		&i.ChannelNick,
		&i.Points,
		&i.Online,
		&i.WindowMode,
		&i.CreatedAt,
		&i.LastActivityAt,
	)
	return i, err
}

const listLurkingViewerIDs = `-- name: ListLurkingViewerIDs :many
SELECT v.id
FROM viewers v
JOIN lurk_sessions s ON s.viewer_id = v.id AND s.active
WHERE v.online
ORDER BY v.id
`

func (q *Queries) ListLurkingViewerIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := q.db.QueryContext(ctx, listLurkingViewerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOnlineViewers = `-- name: ListOnlineViewers :many
SELECT id, channel_nick, points, online, window_mode, created_at, last_activity_at
FROM viewers
WHERE online
ORDER BY channel_nick
`

func (q *Queries) ListOnlineViewers(ctx context.Context) ([]Viewer, error) {
	return q.listViewers(ctx, listOnlineViewers)
}

const listViewersByPoints = `-- name: ListViewersByPoints :many
SELECT id, channel_nick, points, online, window_mode, created_at, last_activity_at
FROM viewers
ORDER BY points DESC, channel_nick
`

func (q *Queries) ListViewersByPoints(ctx context.Context) ([]Viewer, error) {
	return q.listViewers(ctx, listViewersByPoints)
}

func (q *Queries) listViewers(ctx context.Context, query string) ([]Viewer, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Viewer
	for rows.Next() {
		var i Viewer
		if err := rows.Scan(
			&i.ID,
			&i.ChannelNick,
			&i.Points,
			&i.Online,
			&i.WindowMode,
			&i.CreatedAt,
			&i.LastActivityAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const resetAllPoints = `-- name: ResetAllPoints :execrows
UPDATE viewers
SET points = 0
WHERE points <> 0
`

func (q *Queries) ResetAllPoints(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, resetAllPoints)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const setViewerOffline = `-- name: SetViewerOffline :one
UPDATE viewers
SET online = FALSE,
    last_activity_at = $2
WHERE id = $1
RETURNING id, channel_nick, points, online, window_mode, created_at, last_activity_at
`

type SetViewerOfflineParams struct {
	ID             uuid.UUID `json:"id"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

func (q *Queries) SetViewerOffline(ctx context.Context, arg SetViewerOfflineParams) (Viewer, error) {
	row := q.db.QueryRowContext(ctx, setViewerOffline, arg.ID, arg.LastActivityAt)
	var i Viewer
	err := row.Scan(
		&i.ID,
		&i.ChannelNick,
		&i.Points,
		&i.Online,
		&i.WindowMode,
		&i.CreatedAt,
		&i.LastActivityAt,
	)
	return i, err
}

const setViewerOnline = `-- name: SetViewerOnline :one
UPDATE viewers
SET online = TRUE,
    window_mode = $2,
    last_activity_at = $3
WHERE id = $1
RETURNING id, channel_nick, points, online, window_mode, created_at, last_activity_at
`

type SetViewerOnlineParams struct {
	ID             uuid.UUID `json:"id"`
	WindowMode     string    `json:"window_mode"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

func (q *Queries) SetViewerOnline(ctx context.Context, arg SetViewerOnlineParams) (Viewer, error) {
	row := q.db.QueryRowContext(ctx, setViewerOnline, arg.ID, arg.WindowMode, arg.LastActivityAt)
	var i Viewer
	err := row.Scan(
		&i.ID,
		&i.ChannelNick,
		&i.Points,
		&i.Online,
		&i.WindowMode,
		&i.CreatedAt,
		&i.LastActivityAt,
	)
	return i, err
}
