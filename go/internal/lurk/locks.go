package lurk

import (
	"sync"

	"github.com/google/uuid"
)

// viewerLocks hands out one mutex per viewer, dropped again once nobody holds
// or waits on it.
type viewerLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*viewerLock
}

type viewerLock struct {
	mu   sync.Mutex
	refs int
}

func newViewerLocks() *viewerLocks {
	return &viewerLocks{locks: make(map[uuid.UUID]*viewerLock)}
}

// lock blocks until the viewer's mutex is held and returns its release func
func (l *viewerLocks) lock(viewerID uuid.UUID) func() {
	l.mu.Lock()
	vl, ok := l.locks[viewerID]
	if !ok {
		vl = &viewerLock{}
		l.locks[viewerID] = vl
	}
	vl.refs++
	l.mu.Unlock()

	vl.mu.Lock()
	return func() {
		vl.mu.Unlock()

		l.mu.Lock()
		vl.refs--
		if vl.refs == 0 {
			delete(l.locks, viewerID)
		}
		l.mu.Unlock()
	}
}

func (l *viewerLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
