package session

import "sync"

// Registry tracks one Manager per console session ID. Browser tabs carry the
// session ID on every request; the registry lazily creates managers so a
// restarted server can rehydrate persisted impersonation state on first
// contact.
type Registry struct {
	mu       sync.RWMutex
	managers map[string]*Manager
	opts     []Option
}

// NewRegistry creates a registry whose managers share the given options.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		managers: make(map[string]*Manager),
		opts:     opts,
	}
}

// Get returns the manager for a session ID if one exists.
func (r *Registry) Get(sessionID string) (*Manager, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.managers[sessionID]
	return m, ok
}

// GetOrCreate returns the manager for a session ID, creating one on first use.
func (r *Registry) GetOrCreate(sessionID string) *Manager {
	r.mu.RLock()
	m, ok := r.managers[sessionID]
	r.mu.RUnlock()
	if ok {
		return m
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.managers[sessionID]; ok {
		return m
	}
	m = NewManager(sessionID, r.opts...)
	r.managers[sessionID] = m
	return m
}

// Remove drops a session's manager, typically after logout.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.managers, sessionID)
}

// Count returns the number of tracked sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.managers)
}

// ActiveImpersonations returns how many sessions are currently impersonating.
func (r *Registry) ActiveImpersonations() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, m := range r.managers {
		if m.IsImpersonating() {
			n++
		}
	}
	return n
}
