package lurk_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/weblurk/go/internal/events"
	"github.com/mcdev12/weblurk/go/internal/lurk"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/store/memory"
	"github.com/stretchr/testify/require"
)

const (
	interval = 360 * time.Second
	waitFor  = 2 * time.Second
	pollTick = 2 * time.Millisecond
)

var epoch = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

// countingAccruer counts CreditTick calls and can fail or block them.
type countingAccruer struct {
	inner     lurk.Accruer
	calls     atomic.Int64
	completed atomic.Int64

	mu       sync.Mutex
	failNext int
	entered  chan struct{}
	release  chan struct{}
}

func (a *countingAccruer) CreditTick(ctx context.Context, viewerID uuid.UUID, at time.Time) (*models.Credit, error) {
	a.calls.Add(1)
	defer a.completed.Add(1)

	a.mu.Lock()
	fail := a.failNext > 0
	if fail {
		a.failNext--
	}
	entered, release := a.entered, a.release
	a.mu.Unlock()

	if fail {
		return nil, models.ErrStoreUnavailable
	}
	if entered != nil {
		entered <- struct{}{}
		<-release
	}
	return a.inner.CreditTick(ctx, viewerID, at)
}

// block makes every following CreditTick wait for a value on the returned release channel
func (a *countingAccruer) block() (entered chan struct{}, release chan struct{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entered = make(chan struct{})
	a.release = make(chan struct{})
	return a.entered, a.release
}

type harness struct {
	t       *testing.T
	store   *memory.Store
	clock   *clockwork.FakeClock
	accruer *countingAccruer
	sched   *lurk.Scheduler
	app     *lurk.App
	events  *events.Recorder
}

func newHarness(t *testing.T, opts ...lurk.SchedulerOption) *harness {
	t.Helper()

	store := memory.New()
	clock := clockwork.NewFakeClockAt(epoch)
	accruer := &countingAccruer{inner: store}
	rec := &events.Recorder{}

	opts = append([]lurk.SchedulerOption{
		lurk.WithClock(clock),
		lurk.WithInterval(interval),
		lurk.WithPublisher(rec),
	}, opts...)
	sched := lurk.NewScheduler(accruer, opts...)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		_ = sched.Shutdown(ctx)
	})

	return &harness{
		t:       t,
		store:   store,
		clock:   clock,
		accruer: accruer,
		sched:   sched,
		app:     lurk.NewApp(store, sched, clock, rec),
		events:  rec,
	}
}

func (h *harness) viewer(nick string, points int64) uuid.UUID {
	h.t.Helper()
	v, err := h.store.CreateViewer(context.Background(), nick, epoch)
	require.NoError(h.t, err)
	require.NoError(h.t, h.store.SetPoints(v.ID, points))
	return v.ID
}

func (h *harness) points(id uuid.UUID) int64 {
	h.t.Helper()
	v, err := h.store.GetViewer(context.Background(), id)
	require.NoError(h.t, err)
	return v.Points
}

// tick advances one interval and waits until every running task finished
// the credit it triggered.
func (h *harness) tick() {
	h.t.Helper()
	want := h.accruer.completed.Load() + int64(h.sched.Running())
	h.clock.Advance(interval)
	require.Eventually(h.t, func() bool {
		return h.accruer.completed.Load() >= want
	}, waitFor, pollTick)
}

func (h *harness) waitRunning(n int) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		return h.sched.Running() == n
	}, waitFor, pollTick)
}

func (h *harness) begin(id uuid.UUID, mode models.WindowMode) *models.LurkSession {
	h.t.Helper()
	session, err := h.app.BeginLurk(context.Background(), lurk.BeginLurkRequest{ViewerID: id, WindowMode: mode})
	require.NoError(h.t, err)
	return session
}
