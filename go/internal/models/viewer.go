package models

import (
	"time"

	"github.com/google/uuid"
)

// WindowMode defines the kind of companion window a viewer lurks with.
type WindowMode string

const (
	WindowModePopup WindowMode = "popup"
	WindowModeTab   WindowMode = "tab"
)

// DefaultWindowMode is used when a client does not say which window it opened.
const DefaultWindowMode = WindowModePopup

// Valid reports whether m is one of the known window modes.
func (m WindowMode) Valid() bool {
	switch m {
	case WindowModePopup, WindowModeTab:
		return true
	}
	return false
}

// Viewer represents a stream viewer that can earn lurk points.
type Viewer struct {
	ID             uuid.UUID  `json:"id"`
	ChannelNick    string     `json:"channel_nick"`
	Points         int64      `json:"points"`
	Online         bool       `json:"online"`
	WindowMode     WindowMode `json:"window_mode"`
	CreatedAt      time.Time  `json:"created_at"`
	LastActivityAt time.Time  `json:"last_activity_at"`
}
