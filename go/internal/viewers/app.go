package viewers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
)

// MaxNickLength is the longest channel nick accepted, in runes
const MaxNickLength = 100

// ErrInvalidNick is returned for empty or oversized channel nicks
var ErrInvalidNick = fmt.Errorf("%w: channel nick", models.ErrInvalidArgument)

// ViewersRepository defines what the app layer needs from the repository
type ViewersRepository interface {
	CreateViewer(ctx context.Context, nick string, at time.Time) (*models.Viewer, error)
	GetViewer(ctx context.Context, id uuid.UUID) (*models.Viewer, error)
	GetViewerByNick(ctx context.Context, nick string) (*models.Viewer, error)
	ListOnlineViewers(ctx context.Context) ([]models.Viewer, error)
}

// App handles viewer registration and lookups
type App struct {
	repo  ViewersRepository
	clock clockwork.Clock
}

// NewApp creates a new viewers App
func NewApp(repo ViewersRepository, clock clockwork.Clock) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		repo:  repo,
		clock: clock,
	}
}

// NormalizeNick trims the nick and puts it in Unicode NFC form so visually
// identical nicks map to one viewer.
func NormalizeNick(nick string) (string, error) {
	nick = norm.NFC.String(strings.TrimSpace(nick))
	if nick == "" {
		return "", fmt.Errorf("%w is required", ErrInvalidNick)
	}
	if utf8.RuneCountInString(nick) > MaxNickLength {
		return "", fmt.Errorf("%w longer than %d characters", ErrInvalidNick, MaxNickLength)
	}
	return nick, nil
}

// RegisterNick returns the viewer with the given nick, creating it on first use
func (a *App) RegisterNick(ctx context.Context, nick string) (*models.Viewer, error) {
	nick, err := NormalizeNick(nick)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	viewer, err := a.repo.GetViewerByNick(ctx, nick)
	if err == nil {
		return viewer, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up viewer: %w", err)
	}

	viewer, err = a.repo.CreateViewer(ctx, nick, a.clock.Now())
	if errors.Is(err, models.ErrAlreadyExists) {
		// Lost a concurrent registration; the winner's row is the viewer.
		viewer, err = a.repo.GetViewerByNick(ctx, nick)
	} else if err == nil {
		log.Info().Str("viewer_id", viewer.ID.String()).Str("nick", nick).Msg("registered viewer")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register viewer: %w", err)
	}
	return viewer, nil
}

// GetViewer retrieves a viewer by ID
func (a *App) GetViewer(ctx context.Context, id uuid.UUID) (*models.Viewer, error) {
	viewer, err := a.repo.GetViewer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer: %w", err)
	}
	return viewer, nil
}

// ListOnline returns viewers currently marked online
func (a *App) ListOnline(ctx context.Context) ([]models.Viewer, error) {
	viewers, err := a.repo.ListOnlineViewers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list online viewers: %w", err)
	}
	return viewers, nil
}
