package lurk_test

import (
	"context"
	"testing"
	"time"

	"github.com/mcdev12/weblurk/go/internal/events"
	"github.com/mcdev12/weblurk/go/internal/lurk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerCreditsOnlineViewer(t *testing.T) {
	h := newHarness(t)
	id := h.viewer("lurker", 0)
	h.begin(id, "")

	h.tick()
	assert.Equal(t, int64(1), h.points(id))

	h.tick()
	assert.Equal(t, int64(2), h.points(id))

	// Events are published after the store call returns.
	require.Eventually(t, func() bool {
		return len(h.events.Events(events.EventTypePointCredited)) == 2
	}, waitFor, pollTick)
}

func TestSchedulerNothingBeforeInterval(t *testing.T) {
	h := newHarness(t)
	id := h.viewer("lurker", 0)
	h.begin(id, "")

	h.clock.Advance(interval - time.Second)
	assert.Never(t, func() bool { return h.accruer.calls.Load() > 0 }, 50*time.Millisecond, pollTick)
	assert.Equal(t, int64(0), h.points(id))
}

func TestSchedulerOfflineViewerKeepsTask(t *testing.T) {
	h := newHarness(t)
	id := h.viewer("lurker", 3)
	h.begin(id, "")
	require.NoError(t, h.store.SetOnline(id, false))

	h.tick()
	assert.Equal(t, int64(3), h.points(id))
	assert.True(t, h.sched.Active(id))

	require.NoError(t, h.store.SetOnline(id, true))
	h.tick()
	assert.Equal(t, int64(4), h.points(id))
}

func TestSchedulerStoreFailureSkipsTick(t *testing.T) {
	h := newHarness(t)
	id := h.viewer("lurker", 0)
	h.begin(id, "")

	h.accruer.mu.Lock()
	h.accruer.failNext = 1
	h.accruer.mu.Unlock()

	h.tick()
	assert.Equal(t, int64(0), h.points(id))
	assert.True(t, h.sched.Active(id))

	h.tick()
	assert.Equal(t, int64(1), h.points(id))
}

func TestSchedulerIdleTickLimit(t *testing.T) {
	h := newHarness(t, lurk.WithIdleTickLimit(2))
	id := h.viewer("lurker", 0)
	h.begin(id, "")
	require.NoError(t, h.store.SetOnline(id, false))

	h.tick()
	assert.True(t, h.sched.Active(id))

	h.tick()
	h.waitRunning(0)
	assert.False(t, h.sched.Active(id))
	assert.Equal(t, 0, h.sched.Len())
}

func TestSchedulerDuplicateStartKeepsOneTask(t *testing.T) {
	h := newHarness(t)
	id := h.viewer("lurker", 0)
	require.NoError(t, h.store.SetOnline(id, true))

	h.sched.Start(id)
	h.sched.Start(id)
	h.sched.Start(id)

	assert.Equal(t, 1, h.sched.Len())
	h.waitRunning(1)

	h.tick()
	assert.Equal(t, int64(1), h.points(id))
	assert.Equal(t, int64(1), h.accruer.calls.Load())
}

func TestSchedulerStopIsNoopWithoutTask(t *testing.T) {
	h := newHarness(t)
	id := h.viewer("lurker", 0)

	h.sched.Stop(id)
	h.sched.Stop(id)
	assert.Equal(t, 0, h.sched.Len())
}

func TestSchedulerStopDuringInFlightCredit(t *testing.T) {
	h := newHarness(t)
	id := h.viewer("lurker", 0)
	h.begin(id, "")

	entered, release := h.accruer.block()
	h.clock.Advance(interval)
	<-entered

	// Stop returns while the credit is still blocked in the store.
	h.sched.Stop(id)
	assert.False(t, h.sched.Active(id))

	close(release)
	h.waitRunning(0)
	assert.Equal(t, int64(1), h.points(id), "in-flight credit completes")

	// The exited task never runs again.
	h.clock.Advance(interval)
	h.clock.Advance(interval)
	assert.Never(t, func() bool { return h.accruer.calls.Load() > 1 }, 50*time.Millisecond, pollTick)
	assert.Equal(t, int64(1), h.points(id))
}

func TestSchedulerShutdown(t *testing.T) {
	h := newHarness(t)
	for _, nick := range []string{"a", "b", "c"} {
		h.begin(h.viewer(nick, 0), "")
	}
	h.waitRunning(3)

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, h.sched.Shutdown(ctx))
	assert.Equal(t, 0, h.sched.Running())
	assert.Equal(t, 0, h.sched.Len())

	late := h.viewer("late", 0)
	h.sched.Start(late)
	assert.False(t, h.sched.Active(late))
	assert.Equal(t, 0, h.sched.Running())
}
