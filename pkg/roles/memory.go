package roles

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps templates in memory, newest first on List.
type MemoryStore struct {
	mu        sync.RWMutex
	templates []Template
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWithBuiltins creates a store pre-loaded with the built-in
// starter templates.
func NewMemoryStoreWithBuiltins() *MemoryStore {
	s := NewMemoryStore()
	for _, tpl := range BuiltInTemplates() {
		tpl.CreatedAt = time.Now().UTC()
		s.templates = append(s.templates, tpl)
	}
	return s
}

// Create stores a template, assigning id and timestamp when unset.
func (s *MemoryStore) Create(ctx context.Context, tpl *Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tpl.ID == "" {
		tpl.ID = "role-" + uuid.NewString()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now().UTC()
	}
	s.templates = append(s.templates, *tpl)
	return nil
}

// Get looks a template up by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.templates {
		if s.templates[i].ID == id {
			tpl := s.templates[i]
			return &tpl, nil
		}
	}
	return nil, ErrTemplateNotFound
}

// List returns templates for a tenant (empty tenantID matches all), newest
// first.
func (s *MemoryStore) List(ctx context.Context, tenantID string) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Template, 0, len(s.templates))
	for i := len(s.templates) - 1; i >= 0; i-- {
		tpl := s.templates[i]
		if tenantID != "" && tpl.TenantID != tenantID {
			continue
		}
		out = append(out, tpl)
	}
	return out, nil
}

// Delete removes a template by id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			return nil
		}
	}
	return ErrTemplateNotFound
}
