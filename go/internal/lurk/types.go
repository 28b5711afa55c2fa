package lurk

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/models"
)

// BeginLurkRequest is the input of App.BeginLurk
type BeginLurkRequest struct {
	ViewerID   uuid.UUID
	WindowMode models.WindowMode
	// ClientInfo is optional request metadata kept with the session
	ClientInfo json.RawMessage
}

// LurkStatus reports whether a viewer is currently earning points
type LurkStatus struct {
	Lurking bool
	Viewer  *models.Viewer
	Session *models.LurkSession
}
