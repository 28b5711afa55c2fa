package memory

import (
	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/models"
)

// Test fixtures. The methods below bypass the lifecycle rules of the
// repository interfaces so tests in other packages can set up and inspect
// state directly. Nothing in the server calls them; it only sees the Store
// through the repository interfaces.

// Sessions returns every session of the viewer in creation order
func (s *Store) Sessions(viewerID uuid.UUID) []models.LurkSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.LurkSession
	for _, ls := range s.sessions {
		if ls.ViewerID == viewerID {
			out = append(out, *copySession(ls))
		}
	}
	return out
}

// SetOnline overwrites the viewer's online flag without touching sessions
func (s *Store) SetOnline(viewerID uuid.UUID, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.viewers[viewerID]
	if !ok {
		return notFound("viewer", viewerID)
	}
	v.Online = online
	return nil
}

// SetPoints overwrites the viewer's point balance
func (s *Store) SetPoints(viewerID uuid.UUID, points int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.viewers[viewerID]
	if !ok {
		return notFound("viewer", viewerID)
	}
	v.Points = points
	return nil
}
