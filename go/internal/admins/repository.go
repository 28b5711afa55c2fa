package admins

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/db"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateAdministrator(ctx context.Context, arg db.CreateAdministratorParams) (db.Administrator, error)
	DeleteAdministrator(ctx context.Context, id uuid.UUID) (int64, error)
	GetAdministrator(ctx context.Context, id uuid.UUID) (db.Administrator, error)
	GetAdministratorByLogin(ctx context.Context, login string) (db.Administrator, error)
	ListAdministrators(ctx context.Context) ([]db.Administrator, error)
	UpdateAdministratorPassword(ctx context.Context, arg db.UpdateAdministratorPasswordParams) (int64, error)
}

// Repository implements administrator data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new admins repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

var _ AdminsRepository = (*Repository)(nil)

// CreateAdmin inserts an administrator; a taken login yields models.ErrAlreadyExists
func (r *Repository) CreateAdmin(ctx context.Context, admin models.Administrator) (*models.Administrator, error) {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	row, err := r.queries.CreateAdministrator(ctx, db.CreateAdministratorParams{
		ID:           admin.ID,
		Login:        admin.Login,
		PasswordHash: admin.PasswordHash,
		Creator:      admin.Creator,
		CreatedAt:    admin.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create administrator: %w", sqlutil.Classify(err))
	}
	return row.ToModel(), nil
}

// GetAdmin retrieves an administrator by ID
func (r *Repository) GetAdmin(ctx context.Context, id uuid.UUID) (*models.Administrator, error) {
	row, err := r.queries.GetAdministrator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get administrator: %w", sqlutil.Classify(err))
	}
	return row.ToModel(), nil
}

// GetAdminByLogin retrieves an administrator by login
func (r *Repository) GetAdminByLogin(ctx context.Context, login string) (*models.Administrator, error) {
	row, err := r.queries.GetAdministratorByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get administrator by login: %w", sqlutil.Classify(err))
	}
	return row.ToModel(), nil
}

// ListAdmins returns administrators, oldest first
func (r *Repository) ListAdmins(ctx context.Context) ([]models.Administrator, error) {
	rows, err := r.queries.ListAdministrators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list administrators: %w", sqlutil.Classify(err))
	}
	out := make([]models.Administrator, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.ToModel())
	}
	return out, nil
}

// DeleteAdmin removes an administrator
func (r *Repository) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteAdministrator(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete administrator: %w", sqlutil.Classify(err))
	}
	if n == 0 {
		return fmt.Errorf("administrator %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// UpdateAdminPassword replaces an administrator's password hash
func (r *Repository) UpdateAdminPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	n, err := r.queries.UpdateAdministratorPassword(ctx, db.UpdateAdministratorPasswordParams{
		ID:           id,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return fmt.Errorf("failed to update administrator password: %w", sqlutil.Classify(err))
	}
	if n == 0 {
		return fmt.Errorf("administrator %s: %w", id, models.ErrNotFound)
	}
	return nil
}
