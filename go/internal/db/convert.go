package db

import (
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/sqlutil"
)

// Conversions from rows to domain models, shared by the repositories.

func (v Viewer) ToModel() *models.Viewer {
	return &models.Viewer{
		ID:             v.ID,
		ChannelNick:    v.ChannelNick,
		Points:         v.Points,
		Online:         v.Online,
		WindowMode:     models.WindowMode(v.WindowMode),
		CreatedAt:      v.CreatedAt,
		LastActivityAt: v.LastActivityAt,
	}
}

func (s LurkSession) ToModel() *models.LurkSession {
	return &models.LurkSession{
		ID:              s.ID,
		ViewerID:        s.ViewerID,
		WindowMode:      models.WindowMode(s.WindowMode),
		Active:          s.Active,
		StartedAt:       s.StartedAt,
		EndedAt:         sqlutil.FromSqlTime(s.EndedAt),
		PointsGenerated: s.PointsGenerated,
		ClientInfo:      sqlutil.FromNullRawMessage(s.ClientInfo),
	}
}

func (e ScheduleEntry) ToModel() *models.ScheduleEntry {
	return &models.ScheduleEntry{
		ID:           e.ID,
		StartsAt:     e.StartsAt,
		PlatformLink: e.PlatformLink,
		ChannelName:  e.ChannelName,
		ImportedAt:   e.ImportedAt,
	}
}

func (a Administrator) ToModel() *models.Administrator {
	return &models.Administrator{
		ID:           a.ID,
		Login:        a.Login,
		PasswordHash: a.PasswordHash,
		Creator:      a.Creator,
		CreatedAt:    a.CreatedAt,
	}
}

// ViewersToModels converts a slice of viewer rows
func ViewersToModels(rows []Viewer) []models.Viewer {
	out := make([]models.Viewer, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r.ToModel())
	}
	return out
}
