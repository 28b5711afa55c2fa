package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type Administrator struct {
	ID           uuid.UUID `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"password_hash"`
	Creator      bool      `json:"creator"`
	CreatedAt    time.Time `json:"created_at"`
}

type LurkSession struct {
	ID              uuid.UUID             `json:"id"`
	ViewerID        uuid.UUID             `json:"viewer_id"`
	WindowMode      string                `json:"window_mode"`
	Active          bool                  `json:"active"`
	StartedAt       time.Time             `json:"started_at"`
	EndedAt         sql.NullTime          `json:"ended_at"`
	PointsGenerated int64                 `json:"points_generated"`
	ClientInfo      pqtype.NullRawMessage `json:"client_info"`
}

type ScheduleEntry struct {
	ID           uuid.UUID `json:"id"`
	StartsAt     time.Time `json:"starts_at"`
	PlatformLink string    `json:"platform_link"`
	ChannelName  string    `json:"channel_name"`
	ImportedAt   time.Time `json:"imported_at"`
}

type Viewer struct {
	ID             uuid.UUID `json:"id"`
	ChannelNick    string    `json:"channel_nick"`
	Points         int64     `json:"points"`
	Online         bool      `json:"online"`
	WindowMode     string    `json:"window_mode"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}
