package weblurkv1

import (
	"github.com/mcdev12/weblurk/go/internal/models"
)

// ViewerFromModel converts a domain viewer to its wire form
func ViewerFromModel(v *models.Viewer) *Viewer {
	if v == nil {
		return nil
	}
	return &Viewer{
		ID:             v.ID.String(),
		ChannelNick:    v.ChannelNick,
		Points:         v.Points,
		Online:         v.Online,
		WindowMode:     string(v.WindowMode),
		CreatedAt:      v.CreatedAt,
		LastActivityAt: v.LastActivityAt,
	}
}

// ViewersFromModels converts a list of viewers
func ViewersFromModels(vs []models.Viewer) []*Viewer {
	out := make([]*Viewer, 0, len(vs))
	for i := range vs {
		out = append(out, ViewerFromModel(&vs[i]))
	}
	return out
}

// LurkSessionFromModel converts a domain session to its wire form
func LurkSessionFromModel(s *models.LurkSession) *LurkSession {
	if s == nil {
		return nil
	}
	return &LurkSession{
		ID:              s.ID.String(),
		ViewerID:        s.ViewerID.String(),
		WindowMode:      string(s.WindowMode),
		Active:          s.Active,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		PointsGenerated: s.PointsGenerated,
	}
}

// ScheduleEntriesFromModels converts agenda entries
func ScheduleEntriesFromModels(es []models.ScheduleEntry) []*ScheduleEntry {
	out := make([]*ScheduleEntry, 0, len(es))
	for _, e := range es {
		out = append(out, &ScheduleEntry{
			ID:           e.ID.String(),
			Date:         e.Date(),
			Time:         e.Clock(),
			PlatformLink: e.PlatformLink,
			ChannelName:  e.ChannelName,
		})
	}
	return out
}

// AdministratorFromModel converts an administrator, dropping the password hash
func AdministratorFromModel(a *models.Administrator) *Administrator {
	if a == nil {
		return nil
	}
	return &Administrator{
		ID:        a.ID.String(),
		Login:     a.Login,
		Creator:   a.Creator,
		CreatedAt: a.CreatedAt,
	}
}
