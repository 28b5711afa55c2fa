package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LurkSession is one continuous period during which a viewer kept a
// companion window open.
type LurkSession struct {
	ID              uuid.UUID       `json:"id"`
	ViewerID        uuid.UUID       `json:"viewer_id"`
	WindowMode      WindowMode      `json:"window_mode"`
	Active          bool            `json:"active"`
	StartedAt       time.Time       `json:"started_at"`
	EndedAt         *time.Time      `json:"ended_at,omitempty"`
	PointsGenerated int64           `json:"points_generated"`
	ClientInfo      json.RawMessage `json:"client_info,omitempty"`
}

// Credit is the outcome of a single accrual tick for a viewer.
type Credit struct {
	ViewerID      uuid.UUID  `json:"viewer_id"`
	Credited      bool       `json:"credited"`
	Points        int64      `json:"points"`
	SessionID     *uuid.UUID `json:"session_id,omitempty"`
	SessionPoints int64      `json:"session_points"`
	At            time.Time  `json:"at"`
}
