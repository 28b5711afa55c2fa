package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the lurk core
const (
	EventTypeLurkStarted   = "LurkStarted"
	EventTypeLurkEnded     = "LurkEnded"
	EventTypePointCredited = "PointCredited"
)

// LurkStartedPayload is emitted after a new lurk session was committed.
type LurkStartedPayload struct {
	SessionID         uuid.UUID  `json:"session_id"`
	WindowMode        string     `json:"window_mode"`
	StartedAt         time.Time  `json:"started_at"`
	ReplacedSessionID *uuid.UUID `json:"replaced_session_id,omitempty"`
}

// LurkEndedPayload is emitted when an active session was closed by an explicit stop.
type LurkEndedPayload struct {
	SessionID       uuid.UUID `json:"session_id"`
	EndedAt         time.Time `json:"ended_at"`
	PointsGenerated int64     `json:"points_generated"`
}

// PointCreditedPayload is emitted for every tick that credited a point.
type PointCreditedPayload struct {
	Points        int64      `json:"points"`
	SessionID     *uuid.UUID `json:"session_id,omitempty"`
	SessionPoints int64      `json:"session_points"`
	CreditedAt    time.Time  `json:"credited_at"`
}
