package lurk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/weblurk/go/internal/events"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/rs/zerolog/log"
)

// LurkRepository defines what the app layer needs from the repository.
// BeginSession and EndSession must apply all of their row changes atomically.
type LurkRepository interface {
	// BeginSession closes any active session, opens a new one and marks the
	// viewer online. It returns the new session and the closed one, if any.
	BeginSession(ctx context.Context, viewerID uuid.UUID, mode models.WindowMode, clientInfo json.RawMessage, at time.Time) (*models.LurkSession, *models.LurkSession, error)
	// EndSession closes the active session, if any, and marks the viewer offline
	EndSession(ctx context.Context, viewerID uuid.UUID, at time.Time) (*models.LurkSession, error)
	GetLurkState(ctx context.Context, viewerID uuid.UUID) (*models.Viewer, *models.LurkSession, error)
	ListLurkingViewerIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Timers is the part of the Scheduler the lifecycle manager drives
type Timers interface {
	Start(viewerID uuid.UUID)
	Stop(viewerID uuid.UUID)
}

// App handles the lurk session lifecycle. It is the only caller of
// Timers.Start and Timers.Stop.
type App struct {
	repo      LurkRepository
	timers    Timers
	clock     clockwork.Clock
	publisher events.Publisher
	locks     *viewerLocks
}

// NewApp creates a new lurk App
func NewApp(repo LurkRepository, timers Timers, clock clockwork.Clock, publisher events.Publisher) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &App{
		repo:      repo,
		timers:    timers,
		clock:     clock,
		publisher: publisher,
		locks:     newViewerLocks(),
	}
}

// BeginLurk starts a lurk session, replacing any active one, and restarts the
// viewer's accrual timer. Calling it again for a lurking viewer is a handover.
func (a *App) BeginLurk(ctx context.Context, req BeginLurkRequest) (*models.LurkSession, error) {
	mode, err := validateBeginLurkRequest(req)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	unlock := a.locks.lock(req.ViewerID)
	defer unlock()

	now := a.clock.Now()
	session, replaced, err := a.repo.BeginSession(ctx, req.ViewerID, mode, req.ClientInfo, now)
	if err != nil {
		return nil, fmt.Errorf("failed to begin lurk session: %w", err)
	}

	a.timers.Stop(req.ViewerID)
	a.timers.Start(req.ViewerID)

	payload := events.LurkStartedPayload{
		SessionID:  session.ID,
		WindowMode: string(session.WindowMode),
		StartedAt:  session.StartedAt,
	}
	logEvent := log.Info().
		Str("viewer_id", req.ViewerID.String()).
		Str("session_id", session.ID.String()).
		Str("window_mode", string(mode))
	if replaced != nil {
		payload.ReplacedSessionID = &replaced.ID
		logEvent = logEvent.Str("replaced_session_id", replaced.ID.String())
	}
	logEvent.Msg("lurk session started")

	events.Emit(ctx, a.publisher, events.EventTypeLurkStarted, req.ViewerID, now, payload)
	return session, nil
}

// EndLurk closes the viewer's active session and stops the accrual timer.
// Ending a viewer that is not lurking succeeds and changes nothing but the
// online flag and activity timestamp.
func (a *App) EndLurk(ctx context.Context, viewerID uuid.UUID) error {
	unlock := a.locks.lock(viewerID)
	defer unlock()

	now := a.clock.Now()
	closed, err := a.repo.EndSession(ctx, viewerID, now)
	if err != nil {
		return fmt.Errorf("failed to end lurk session: %w", err)
	}

	a.timers.Stop(viewerID)

	if closed == nil {
		log.Debug().Str("viewer_id", viewerID.String()).Msg("end lurk without active session")
		return nil
	}

	log.Info().
		Str("viewer_id", viewerID.String()).
		Str("session_id", closed.ID.String()).
		Int64("points_generated", closed.PointsGenerated).
		Msg("lurk session ended")

	events.Emit(ctx, a.publisher, events.EventTypeLurkEnded, viewerID, now, events.LurkEndedPayload{
		SessionID:       closed.ID,
		EndedAt:         now,
		PointsGenerated: closed.PointsGenerated,
	})
	return nil
}

// Status reports the viewer's lurk state
func (a *App) Status(ctx context.Context, viewerID uuid.UUID) (*LurkStatus, error) {
	viewer, session, err := a.repo.GetLurkState(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lurk status: %w", err)
	}

	return &LurkStatus{
		Lurking: viewer.Online && session != nil,
		Viewer:  viewer,
		Session: session,
	}, nil
}

// Resume restarts accrual timers for every viewer the store still records as
// lurking. Timers live in process memory, so this runs once at startup.
func (a *App) Resume(ctx context.Context) (int, error) {
	ids, err := a.repo.ListLurkingViewerIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list lurking viewers: %w", err)
	}

	for _, id := range ids {
		unlock := a.locks.lock(id)
		a.timers.Stop(id)
		a.timers.Start(id)
		unlock()
	}

	log.Info().Int("viewers", len(ids)).Msg("resumed accrual timers")
	return len(ids), nil
}

func validateBeginLurkRequest(req BeginLurkRequest) (models.WindowMode, error) {
	if req.ViewerID == uuid.Nil {
		return "", fmt.Errorf("%w: viewer id is required", models.ErrInvalidArgument)
	}

	mode := req.WindowMode
	if mode == "" {
		mode = models.DefaultWindowMode
	}
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWindowMode, req.WindowMode)
	}

	if len(req.ClientInfo) > 0 && !json.Valid(req.ClientInfo) {
		return "", ErrInvalidClientInfo
	}
	return mode, nil
}
