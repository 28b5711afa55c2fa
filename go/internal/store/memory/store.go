// Package memory is an in-process store with the same semantics as the
// Postgres repositories. It backs the memory store driver and the tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/models"
)

// Store keeps every table in maps guarded by a single mutex, which makes each
// method one atomic unit.
type Store struct {
	mu sync.RWMutex

	viewers  map[uuid.UUID]*models.Viewer
	nicks    map[string]uuid.UUID
	sessions []*models.LurkSession
	active   map[uuid.UUID]*models.LurkSession
	schedule []models.ScheduleEntry
	admins   map[uuid.UUID]*models.Administrator
}

// New creates an empty store
func New() *Store {
	return &Store{
		viewers: make(map[uuid.UUID]*models.Viewer),
		nicks:   make(map[string]uuid.UUID),
		active:  make(map[uuid.UUID]*models.LurkSession),
		admins:  make(map[uuid.UUID]*models.Administrator),
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, models.ErrNotFound)
}

func copyViewer(v *models.Viewer) *models.Viewer {
	c := *v
	return &c
}

func copySession(ls *models.LurkSession) *models.LurkSession {
	c := *ls
	if ls.EndedAt != nil {
		t := *ls.EndedAt
		c.EndedAt = &t
	}
	if ls.ClientInfo != nil {
		c.ClientInfo = append(json.RawMessage(nil), ls.ClientInfo...)
	}
	return &c
}

// Viewers

// CreateViewer inserts a viewer with zero points
func (s *Store) CreateViewer(ctx context.Context, nick string, at time.Time) (*models.Viewer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nicks[nick]; ok {
		return nil, fmt.Errorf("viewer %q: %w", nick, models.ErrAlreadyExists)
	}

	v := &models.Viewer{
		ID:             uuid.New(),
		ChannelNick:    nick,
		WindowMode:     models.DefaultWindowMode,
		CreatedAt:      at,
		LastActivityAt: at,
	}
	s.viewers[v.ID] = v
	s.nicks[nick] = v.ID
	return copyViewer(v), nil
}

// GetViewer returns a viewer by id
func (s *Store) GetViewer(ctx context.Context, id uuid.UUID) (*models.Viewer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.viewers[id]
	if !ok {
		return nil, notFound("viewer", id)
	}
	return copyViewer(v), nil
}

// GetViewerByNick returns a viewer by channel nick
func (s *Store) GetViewerByNick(ctx context.Context, nick string) (*models.Viewer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.nicks[nick]
	if !ok {
		return nil, notFound("viewer", nick)
	}
	return copyViewer(s.viewers[id]), nil
}

// ListOnlineViewers returns online viewers ordered by nick
func (s *Store) ListOnlineViewers(ctx context.Context) ([]models.Viewer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Viewer, 0)
	for _, v := range s.viewers {
		if v.Online {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChannelNick < out[j].ChannelNick })
	return out, nil
}

// ListViewersByPoints returns every viewer, most points first, ties by nick
func (s *Store) ListViewersByPoints(ctx context.Context) ([]models.Viewer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Viewer, 0, len(s.viewers))
	for _, v := range s.viewers {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].ChannelNick < out[j].ChannelNick
	})
	return out, nil
}

// ResetAllPoints zeroes every viewer's points and returns how many changed
func (s *Store) ResetAllPoints(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, v := range s.viewers {
		if v.Points != 0 {
			v.Points = 0
			n++
		}
	}
	return n, nil
}

// Lurk sessions

// BeginSession closes any active session, opens a new one and marks the viewer online
func (s *Store) BeginSession(ctx context.Context, viewerID uuid.UUID, mode models.WindowMode, clientInfo json.RawMessage, at time.Time) (*models.LurkSession, *models.LurkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.viewers[viewerID]
	if !ok {
		return nil, nil, notFound("viewer", viewerID)
	}

	replaced := s.closeActiveLocked(viewerID, at)

	session := &models.LurkSession{
		ID:         uuid.New(),
		ViewerID:   viewerID,
		WindowMode: mode,
		Active:     true,
		StartedAt:  at,
	}
	if len(clientInfo) > 0 {
		session.ClientInfo = append(json.RawMessage(nil), clientInfo...)
	}
	s.sessions = append(s.sessions, session)
	s.active[viewerID] = session

	v.Online = true
	v.WindowMode = mode
	v.LastActivityAt = at

	return copySession(session), replaced, nil
}

// EndSession closes the active session, if any, and marks the viewer offline
func (s *Store) EndSession(ctx context.Context, viewerID uuid.UUID, at time.Time) (*models.LurkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.viewers[viewerID]
	if !ok {
		return nil, notFound("viewer", viewerID)
	}

	closed := s.closeActiveLocked(viewerID, at)
	v.Online = false
	v.LastActivityAt = at
	return closed, nil
}

func (s *Store) closeActiveLocked(viewerID uuid.UUID, at time.Time) *models.LurkSession {
	session, ok := s.active[viewerID]
	if !ok {
		return nil
	}
	delete(s.active, viewerID)
	ended := at
	session.Active = false
	session.EndedAt = &ended
	return copySession(session)
}

// GetLurkState returns the viewer and its active session, nil when there is none
func (s *Store) GetLurkState(ctx context.Context, viewerID uuid.UUID) (*models.Viewer, *models.LurkSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.viewers[viewerID]
	if !ok {
		return nil, nil, notFound("viewer", viewerID)
	}
	var session *models.LurkSession
	if active, ok := s.active[viewerID]; ok {
		session = copySession(active)
	}
	return copyViewer(v), session, nil
}

// ListLurkingViewerIDs returns viewers that are online with an active session
func (s *Store) ListLurkingViewerIDs(ctx context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(s.active))
	for id := range s.active {
		if v, ok := s.viewers[id]; ok && v.Online {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// CreditTick adds one point to an online viewer and its active session
func (s *Store) CreditTick(ctx context.Context, viewerID uuid.UUID, at time.Time) (*models.Credit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.viewers[viewerID]
	if !ok {
		return nil, notFound("viewer", viewerID)
	}

	credit := &models.Credit{ViewerID: viewerID, Points: v.Points, At: at}
	if !v.Online {
		return credit, nil
	}

	v.Points++
	v.LastActivityAt = at
	credit.Credited = true
	credit.Points = v.Points

	if session, ok := s.active[viewerID]; ok {
		session.PointsGenerated++
		id := session.ID
		credit.SessionID = &id
		credit.SessionPoints = session.PointsGenerated
	}
	return credit, nil
}

// Schedule

// ReplaceSchedule swaps the whole agenda for entries
func (s *Store) ReplaceSchedule(ctx context.Context, entries []models.ScheduleEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.schedule = append([]models.ScheduleEntry(nil), entries...)
	sort.SliceStable(s.schedule, func(i, j int) bool {
		return s.schedule[i].StartsAt.Before(s.schedule[j].StartsAt)
	})
	return nil
}

// ListSchedule returns the agenda ordered by start
func (s *Store) ListSchedule(ctx context.Context) ([]models.ScheduleEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.ScheduleEntry{}, s.schedule...), nil
}

// ListScheduleBetween returns entries starting in [from, to)
func (s *Store) ListScheduleBetween(ctx context.Context, from, to time.Time) ([]models.ScheduleEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ScheduleEntry, 0)
	for _, e := range s.schedule {
		if !e.StartsAt.Before(from) && e.StartsAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ClearSchedule deletes every agenda entry
func (s *Store) ClearSchedule(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.schedule))
	s.schedule = nil
	return n, nil
}

// Administrators

// CreateAdmin inserts an administrator; the login must be unique
func (s *Store) CreateAdmin(ctx context.Context, admin models.Administrator) (*models.Administrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.admins {
		if a.Login == admin.Login {
			return nil, fmt.Errorf("administrator %q: %w", admin.Login, models.ErrAlreadyExists)
		}
	}
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	a := admin
	s.admins[a.ID] = &a
	out := a
	return &out, nil
}

// GetAdmin returns an administrator by id
func (s *Store) GetAdmin(ctx context.Context, id uuid.UUID) (*models.Administrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins[id]
	if !ok {
		return nil, notFound("administrator", id)
	}
	out := *a
	return &out, nil
}

// GetAdminByLogin returns an administrator by login
func (s *Store) GetAdminByLogin(ctx context.Context, login string) (*models.Administrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.admins {
		if a.Login == login {
			out := *a
			return &out, nil
		}
	}
	return nil, notFound("administrator", login)
}

// ListAdmins returns administrators, oldest first
func (s *Store) ListAdmins(ctx context.Context) ([]models.Administrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Administrator, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Login < out[j].Login
	})
	return out, nil
}

// DeleteAdmin removes an administrator
func (s *Store) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.admins[id]; !ok {
		return notFound("administrator", id)
	}
	delete(s.admins, id)
	return nil
}

// UpdateAdminPassword replaces an administrator's password hash
func (s *Store) UpdateAdminPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.admins[id]
	if !ok {
		return notFound("administrator", id)
	}
	a.PasswordHash = passwordHash
	return nil
}
