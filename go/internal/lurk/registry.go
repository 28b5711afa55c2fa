package lurk

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// task is one viewer's periodic accrual unit.
type task struct {
	viewerID uuid.UUID
	cancel   context.CancelFunc
}

// Registry maps a viewer id to the cancellation handle of its live accrual
// task. Entries of different viewers never interfere with each other.
type Registry struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*task
}

// NewRegistry creates an empty task registry
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[uuid.UUID]*task),
	}
}

// replace stores t for its viewer. A task already registered for the same
// viewer is cancelled and returned.
func (r *Registry) replace(t *task) *task {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.tasks[t.viewerID]
	if prev != nil {
		prev.cancel()
	}
	r.tasks[t.viewerID] = t
	return prev
}

// cancel cancels and removes the viewer's task. It reports whether one was registered.
func (r *Registry) cancel(viewerID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[viewerID]
	if !ok {
		return false
	}
	delete(r.tasks, viewerID)
	t.cancel()
	return true
}

// remove deletes the viewer's entry only while it still belongs to t, so an
// exiting task never evicts the task that replaced it.
func (r *Registry) remove(t *task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.tasks[t.viewerID]; ok && cur == t {
		delete(r.tasks, t.viewerID)
	}
}

// cancelAll cancels every registered task and empties the registry
func (r *Registry) cancelAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.tasks)
	for id, t := range r.tasks {
		t.cancel()
		delete(r.tasks, id)
	}
	return n
}

// Has reports whether a live task is registered for the viewer
func (r *Registry) Has(viewerID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[viewerID]
	return ok
}

// Len returns the number of registered tasks
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}
