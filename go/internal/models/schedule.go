package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry is one broadcast on the agenda.
// StartsAt carries wall-clock date and time without a meaningful zone.
type ScheduleEntry struct {
	ID           uuid.UUID `json:"id"`
	StartsAt     time.Time `json:"starts_at"`
	PlatformLink string    `json:"platform_link"`
	ChannelName  string    `json:"channel_name"`
	ImportedAt   time.Time `json:"imported_at"`
}

// Date returns the entry date as YYYY-MM-DD.
func (e ScheduleEntry) Date() string {
	return e.StartsAt.Format("2006-01-02")
}

// Clock returns the entry time of day as HH:MM.
func (e ScheduleEntry) Clock() string {
	return e.StartsAt.Format("15:04")
}
