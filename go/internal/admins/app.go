package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// DefaultLogin is the creator administrator seeded on an empty install
const DefaultLogin = "ADM"

// bcrypt ignores everything past 72 bytes
const maxPasswordBytes = 72

var (
	// ErrInvalidCredentials is returned when a login or password does not match
	ErrInvalidCredentials = fmt.Errorf("%w: invalid login or password", models.ErrUnauthenticated)

	// ErrForbidden is returned when an administrator may not perform an action
	ErrForbidden = fmt.Errorf("%w: not allowed for this administrator", models.ErrPermissionDenied)

	// ErrCreatorProtected is returned when deleting the creator administrator
	ErrCreatorProtected = fmt.Errorf("%w: the creator administrator cannot be deleted", models.ErrPermissionDenied)

	// ErrInvalidAdmin is returned for missing or malformed login data
	ErrInvalidAdmin = fmt.Errorf("%w: administrator", models.ErrInvalidArgument)
)

// AdminsRepository defines what the app layer needs from the repository
type AdminsRepository interface {
	CreateAdmin(ctx context.Context, admin models.Administrator) (*models.Administrator, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*models.Administrator, error)
	GetAdminByLogin(ctx context.Context, login string) (*models.Administrator, error)
	ListAdmins(ctx context.Context) ([]models.Administrator, error)
	DeleteAdmin(ctx context.Context, id uuid.UUID) error
	UpdateAdminPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// Option configures an App
type Option func(*App)

// WithHashCost sets the bcrypt cost; tests use bcrypt.MinCost
func WithHashCost(cost int) Option {
	return func(a *App) { a.hashCost = cost }
}

// App handles administrator accounts and credential checks
type App struct {
	repo     AdminsRepository
	clock    clockwork.Clock
	hashCost int
}

// NewApp creates a new admins App
func NewApp(repo AdminsRepository, clock clockwork.Clock, opts ...Option) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	a := &App{
		repo:     repo,
		clock:    clock,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Bootstrap makes sure the creator administrator exists
func (a *App) Bootstrap(ctx context.Context, login, password string) (*models.Administrator, error) {
	if login == "" {
		login = DefaultLogin
	}

	existing, err := a.repo.GetAdminByLogin(ctx, login)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up bootstrap administrator: %w", err)
	}

	admin, err := a.create(ctx, login, password, true)
	if errors.Is(err, models.ErrAlreadyExists) {
		return a.repo.GetAdminByLogin(ctx, login)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap administrator: %w", err)
	}

	log.Info().Str("login", admin.Login).Msg("created creator administrator")
	return admin, nil
}

// Authenticate checks a login and password pair
func (a *App) Authenticate(ctx context.Context, login, password string) (*models.Administrator, error) {
	admin, err := a.repo.GetAdminByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// CreateAdmin adds a regular administrator
func (a *App) CreateAdmin(ctx context.Context, login, password string) (*models.Administrator, error) {
	admin, err := a.create(ctx, login, password, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create administrator: %w", err)
	}

	log.Info().Str("admin_id", admin.ID.String()).Str("login", admin.Login).Msg("created administrator")
	return admin, nil
}

// ListAdmins returns every administrator
func (a *App) ListAdmins(ctx context.Context) ([]models.Administrator, error) {
	admins, err := a.repo.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list administrators: %w", err)
	}
	return admins, nil
}

// DeleteAdmin removes an administrator on behalf of actor. The creator can
// delete anyone but itself; other administrators can only delete themselves.
func (a *App) DeleteAdmin(ctx context.Context, actor *models.Administrator, id uuid.UUID) error {
	target, err := a.repo.GetAdmin(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get administrator: %w", err)
	}

	if target.Creator {
		return ErrCreatorProtected
	}
	if !actor.Creator && actor.ID != target.ID {
		return ErrForbidden
	}

	if err := a.repo.DeleteAdmin(ctx, id); err != nil {
		return fmt.Errorf("failed to delete administrator: %w", err)
	}

	log.Info().
		Str("admin_id", target.ID.String()).
		Str("login", target.Login).
		Str("actor", actor.Login).
		Msg("deleted administrator")
	return nil
}

// ChangePassword replaces the acting administrator's own password
func (a *App) ChangePassword(ctx context.Context, actor *models.Administrator, newPassword string) error {
	hash, err := a.hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := a.repo.UpdateAdminPassword(ctx, actor.ID, hash); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	log.Info().Str("admin_id", actor.ID.String()).Str("login", actor.Login).Msg("changed administrator password")
	return nil
}

// hashPassword trims and bounds a password, then bcrypt-hashes it
func (a *App) hashPassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return "", fmt.Errorf("%w: password is required", ErrInvalidAdmin)
	}
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", ErrInvalidAdmin, maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (a *App) create(ctx context.Context, login, password string, creator bool) (*models.Administrator, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrInvalidAdmin)
	}

	hash, err := a.hashPassword(password)
	if err != nil {
		return nil, err
	}

	return a.repo.CreateAdmin(ctx, models.Administrator{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
		Creator:      creator,
		CreatedAt:    a.clock.Now(),
	})
}
