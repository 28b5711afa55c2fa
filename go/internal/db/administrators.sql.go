package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createAdministrator = `-- name: CreateAdministrator :one
INSERT INTO administrators (id, login, password_hash, creator, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, login, password_hash, creator, created_at
`

type CreateAdministratorParams struct {
	ID           uuid.UUID `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"password_hash"`
	Creator      bool      `json:"creator"`
	CreatedAt    time.Time `json:"created_at"`
}

func (q *Queries) CreateAdministrator(ctx context.Context, arg CreateAdministratorParams) (Administrator, error) {
	row := q.db.QueryRowContext(ctx, createAdministrator,
		arg.ID,
		arg.Login,
		arg.PasswordHash,
		arg.Creator,
		arg.CreatedAt,
	)
	var i Administrator
	err := row.Scan(
		&i.ID,
		&i.Login,
		&i.PasswordHash,
		&i.Creator,
		&i.CreatedAt,
	)
	return i, err
}

const deleteAdministrator = `-- name: DeleteAdministrator :execrows
DELETE FROM administrators
WHERE id = $1
`

func (q *Queries) DeleteAdministrator(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAdministrator, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getAdministrator = `-- name: GetAdministrator :one
SELECT id, login, password_hash, creator, created_at
FROM administrators
WHERE id = $1
`

func (q *Queries) GetAdministrator(ctx context.Context, id uuid.UUID) (Administrator, error) {
	row := q.db.QueryRowContext(ctx, getAdministrator, id)
	var i Administrator
	err := row.Scan(
		&i.ID,
		&i.Login,
		&i.PasswordHash,
		&i.Creator,
		&i.CreatedAt,
	)
	return i, err
}

const getAdministratorByLogin = `-- name: GetAdministratorByLogin :one
SELECT id, login, password_hash, creator, created_at
FROM administrators
WHERE login = $1
`

func (q *Queries) GetAdministratorByLogin(ctx context.Context, login string) (Administrator, error) {
	row := q.db.QueryRowContext(ctx, getAdministratorByLogin, login)
	var i Administrator
	err := row.Scan(
		&i.ID,
		&i.Login,
		&i.PasswordHash,
		&i.Creator,
		&i.CreatedAt,
	)
	return i, err
}

const listAdministrators = `-- name: ListAdministrators :many
SELECT id, login, password_hash, creator, created_at
FROM administrators
ORDER BY created_at, login
`

func (q *Queries) ListAdministrators(ctx context.Context) ([]Administrator, error) {
	rows, err := q.db.QueryContext(ctx, listAdministrators)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Administrator
	for rows.Next() {
		var i Administrator
		if err := rows.Scan(
			&i.ID,
			&i.Login,
			&i.PasswordHash,
			&i.Creator,
			&i.CreatedAt,
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

const updateAdministratorPassword = `-- name: UpdateAdministratorPassword :execrows
UPDATE administrators
SET password_hash = $2
WHERE id = $1
`

type UpdateAdministratorPasswordParams struct {
	ID           uuid.UUID `json:"id"`
	PasswordHash string    `json:"password_hash"`
}

func (q *Queries) UpdateAdministratorPassword(ctx context.Context, arg UpdateAdministratorPasswordParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAdministratorPassword, arg.ID, arg.PasswordHash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
