package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(ctx context.Context, event events.Event) error {
	f.calls++
	return errors.New("bus down")
}

func TestNewEvent_EncodesPayload(t *testing.T) {
	viewerID := uuid.New()
	at := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

	event, err := events.NewEvent(events.EventTypeLurkEnded, viewerID, at, events.LurkEndedPayload{
		SessionID:       uuid.New(),
		EndedAt:         at,
		PointsGenerated: 4,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, viewerID, event.ViewerID)
	assert.Equal(t, events.EventTypeLurkEnded, event.Type)

	var payload events.LurkEndedPayload
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, int64(4), payload.PointsGenerated)
}

func TestEmit_SwallowsPublishErrors(t *testing.T) {
	p := &failingPublisher{}
	assert.NotPanics(t, func() {
		events.Emit(context.Background(), p, events.EventTypePointCredited, uuid.New(), time.Now(), events.PointCreditedPayload{Points: 1})
	})
	assert.Equal(t, 1, p.calls)

	events.Emit(context.Background(), nil, events.EventTypePointCredited, uuid.New(), time.Now(), nil)
}

func TestRecorder_FiltersByType(t *testing.T) {
	rec := &events.Recorder{}
	ctx := context.Background()
	events.Emit(ctx, rec, events.EventTypeLurkStarted, uuid.New(), time.Now(), events.LurkStartedPayload{})
	events.Emit(ctx, rec, events.EventTypePointCredited, uuid.New(), time.Now(), events.PointCreditedPayload{})

	assert.Len(t, rec.Events(""), 2)
	assert.Len(t, rec.Events(events.EventTypeLurkStarted), 1)
}
