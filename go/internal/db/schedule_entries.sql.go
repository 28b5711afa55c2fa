package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createScheduleEntry = `-- name: CreateScheduleEntry :exec
INSERT INTO schedule_entries (id, starts_at, platform_link, channel_name, imported_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateScheduleEntryParams struct {
	ID           uuid.UUID `json:"id"`
	StartsAt     time.Time `json:"starts_at"`
	PlatformLink string    `json:"platform_link"`
	ChannelName  string    `json:"channel_name"`
	ImportedAt   time.Time `json:"imported_at"`
}

func (q *Queries) CreateScheduleEntry(ctx context.Context, arg CreateScheduleEntryParams) error {
	_, err := q.db.ExecContext(ctx, createScheduleEntry,
		arg.ID,
		arg.StartsAt,
		arg.PlatformLink,
		arg.ChannelName,
		arg.ImportedAt,
	)
	return err
}

const deleteAllScheduleEntries = `-- name: DeleteAllScheduleEntries :execrows
DELETE FROM schedule_entries
`

func (q *Queries) DeleteAllScheduleEntries(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAllScheduleEntries)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listScheduleEntries = `-- name: ListScheduleEntries :many
SELECT id, starts_at, platform_link, channel_name, imported_at
FROM schedule_entries
ORDER BY starts_at
`

func (q *Queries) ListScheduleEntries(ctx context.Context) ([]ScheduleEntry, error) {
	rows, err := q.db.QueryContext(ctx, listScheduleEntries)
	if err != nil {
		return nil, err
	}
	return scanScheduleEntries(rows)
}

const listScheduleEntriesBetween = `-- name: ListScheduleEntriesBetween :many
SELECT id, starts_at, platform_link, channel_name, imported_at
FROM schedule_entries
WHERE starts_at >= $1 AND starts_at < $2
ORDER BY starts_at
`

type ListScheduleEntriesBetweenParams struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (q *Queries) ListScheduleEntriesBetween(ctx context.Context, arg ListScheduleEntriesBetweenParams) ([]ScheduleEntry, error) {
	rows, err := q.db.QueryContext(ctx, listScheduleEntriesBetween, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	return scanScheduleEntries(rows)
}

func scanScheduleEntries(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Close() error
	Err() error
}) ([]ScheduleEntry, error) {
	defer rows.Close()
	var items []ScheduleEntry
	for rows.Next() {
		var i ScheduleEntry
		if err := rows.Scan(
			&i.ID,
			&i.StartsAt,
			&i.PlatformLink,
			&i.ChannelName,
			&i.ImportedAt,
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
