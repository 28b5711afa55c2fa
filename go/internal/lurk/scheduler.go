package lurk

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/weblurk/go/internal/events"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultInterval is how often a lurking viewer earns a point
	DefaultInterval = 360 * time.Second

	defaultCreditTimeout = 10 * time.Second
)

// Accruer credits one tick for a viewer. Implementations must re-read the
// viewer's online flag and apply the increment as one atomic unit.
type Accruer interface {
	CreditTick(ctx context.Context, viewerID uuid.UUID, at time.Time) (*models.Credit, error)
}

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithClock replaces the real clock, mostly for tests
func WithClock(clock clockwork.Clock) SchedulerOption {
	return func(s *Scheduler) { s.clock = clock }
}

// WithInterval sets the accrual interval
func WithInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithCreditTimeout bounds a single tick's store round trip
func WithCreditTimeout(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.creditTimeout = d
		}
	}
}

// WithIdleTickLimit makes a task exit after n consecutive ticks that found the
// viewer offline. Zero keeps tasks running until an explicit Stop.
func WithIdleTickLimit(n int) SchedulerOption {
	return func(s *Scheduler) { s.idleTickLimit = n }
}

// WithRegistry injects the task registry
func WithRegistry(r *Registry) SchedulerOption {
	return func(s *Scheduler) { s.registry = r }
}

// WithPublisher sets where PointCredited events go
func WithPublisher(p events.Publisher) SchedulerOption {
	return func(s *Scheduler) { s.publisher = p }
}

// Scheduler runs one periodic accrual task per lurking viewer.
type Scheduler struct {
	accruer       Accruer
	registry      *Registry
	clock         clockwork.Clock
	interval      time.Duration
	creditTimeout time.Duration
	idleTickLimit int
	publisher     events.Publisher

	// parent of every task context; cancelled by Shutdown
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	closed  bool
	wg      sync.WaitGroup
	running atomic.Int64
}

// NewScheduler creates a scheduler crediting points through accruer
func NewScheduler(accruer Accruer, opts ...SchedulerOption) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		accruer:       accruer,
		registry:      NewRegistry(),
		clock:         clockwork.NewRealClock(),
		interval:      DefaultInterval,
		creditTimeout: defaultCreditTimeout,
		publisher:     events.NoopPublisher{},
		ctx:           ctx,
		cancel:        cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers and launches a new accrual task for the viewer. Callers are
// expected to Stop any previous task first; if one is still registered it is
// cancelled and the new task takes its place.
func (s *Scheduler) Start(viewerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		log.Warn().Str("viewer_id", viewerID.String()).Msg("scheduler shut down - not starting accrual timer")
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	t := &task{viewerID: viewerID, cancel: cancel}

	// Created before Start returns so the first interval is measured from here.
	ticker := s.clock.NewTicker(s.interval)

	if prev := s.registry.replace(t); prev != nil {
		log.Warn().
			Err(ErrDuplicateTimer).
			Str("viewer_id", viewerID.String()).
			Msg("replaced live accrual timer")
	}

	s.wg.Add(1)
	s.running.Add(1)
	go s.run(ctx, t, ticker)

	log.Debug().
		Str("viewer_id", viewerID.String()).
		Dur("interval", s.interval).
		Msg("started accrual timer")
}

// Stop signals the viewer's task to exit. It does not wait for an in-flight
// tick and is a no-op when no task is registered.
func (s *Scheduler) Stop(viewerID uuid.UUID) {
	if s.registry.cancel(viewerID) {
		log.Debug().Str("viewer_id", viewerID.String()).Msg("stopped accrual timer")
	}
}

// Shutdown cancels every task and waits for their goroutines to exit
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	n := s.registry.cancelAll()
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Int("timers", n).Msg("accrual scheduler shut down")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Active reports whether a task is registered for the viewer
func (s *Scheduler) Active(viewerID uuid.UUID) bool {
	return s.registry.Has(viewerID)
}

// Len returns the number of registered tasks
func (s *Scheduler) Len() int {
	return s.registry.Len()
}

// Running returns the number of task goroutines that have not exited yet.
// It can briefly exceed Len while cancelled tasks wind down.
func (s *Scheduler) Running() int {
	return int(s.running.Load())
}

// Interval returns the accrual interval
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

func (s *Scheduler) run(ctx context.Context, t *task, ticker clockwork.Ticker) {
	defer func() {
		ticker.Stop()
		s.registry.remove(t)
		s.running.Add(-1)
		s.wg.Done()
	}()

	idle := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}

		// A Stop that raced with the tick wins; nothing is credited.
		if ctx.Err() != nil {
			return
		}

		credit, err := s.tick(ctx, t.viewerID)
		if err != nil {
			continue
		}
		if credit.Credited {
			idle = 0
			continue
		}

		idle++
		if s.idleTickLimit > 0 && idle >= s.idleTickLimit {
			log.Info().
				Str("viewer_id", t.viewerID.String()).
				Int("idle_ticks", idle).
				Msg("viewer offline for too long - accrual timer exiting")
			return
		}
	}
}

// tick credits one interval. The store call runs detached from the task's
// cancellation so a credit that has started always commits or fails on its own.
func (s *Scheduler) tick(ctx context.Context, viewerID uuid.UUID) (*models.Credit, error) {
	creditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.creditTimeout)
	defer cancel()

	now := s.clock.Now()
	credit, err := s.accruer.CreditTick(creditCtx, viewerID, now)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn().Str("viewer_id", viewerID.String()).Msg("viewer missing at tick - nothing credited")
			return &models.Credit{ViewerID: viewerID, At: now}, nil
		}
		log.Error().
			Err(err).
			Str("viewer_id", viewerID.String()).
			Bool("store_unavailable", errors.Is(err, models.ErrStoreUnavailable)).
			Msg("accrual tick skipped")
		return nil, err
	}

	if !credit.Credited {
		log.Debug().Str("viewer_id", viewerID.String()).Msg("viewer offline at tick - nothing credited")
		return credit, nil
	}

	log.Debug().
		Str("viewer_id", viewerID.String()).
		Int64("points", credit.Points).
		Int64("session_points", credit.SessionPoints).
		Msg("credited lurk point")

	events.Emit(creditCtx, s.publisher, events.EventTypePointCredited, viewerID, now, events.PointCreditedPayload{
		Points:        credit.Points,
		SessionID:     credit.SessionID,
		SessionPoints: credit.SessionPoints,
		CreditedAt:    now,
	})
	return credit, nil
}
