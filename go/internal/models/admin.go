package models

import (
	"time"

	"github.com/google/uuid"
)

// Administrator can manage the agenda, the ranking and other administrators.
type Administrator struct {
	ID           uuid.UUID `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Creator      bool      `json:"creator"`
	CreatedAt    time.Time `json:"created_at"`
}
