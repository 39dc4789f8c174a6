package tenants

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrTenantNotFound is returned by exact-match tenant lookups.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrTeamNotFound is returned when a team id does not resolve within a
	// tenant, or when a user has no team assignment.
	ErrTeamNotFound = errors.New("team not found")
	// ErrUserNotFound is returned when a user id does not resolve within a
	// tenant.
	ErrUserNotFound = errors.New("user not found")
)

// Store is the single source of truth for tenant, user and team data within a
// session. All views read through it; a create is immediately visible to
// every consumer.
type Store interface {
	// ListTenants returns all tenants in insertion order.
	ListTenants(ctx context.Context) ([]Tenant, error)
	// GetTenant looks a tenant up by id.
	GetTenant(ctx context.Context, id string) (*Tenant, error)
	// UsersOf returns a tenant's users. An absent tenant yields an empty
	// slice, not an error; absence is a valid empty result for this query.
	UsersOf(ctx context.Context, tenantID string) ([]User, error)
	// TeamsOf returns a tenant's teams with the same absence policy as
	// UsersOf.
	TeamsOf(ctx context.Context, tenantID string) ([]Team, error)
	// TeamOf looks a team up within a tenant.
	TeamOf(ctx context.Context, tenantID, teamID string) (*Team, error)
	// UserOf looks a user up within a tenant.
	UserOf(ctx context.Context, tenantID, userID string) (*User, error)
	// PrimaryTeamOf resolves a user's team assignment. ErrTeamNotFound when
	// the user has no assignment or the referenced team is gone.
	PrimaryTeamOf(ctx context.Context, tenantID, userID string) (*Team, error)
	// CreateTenant provisions a tenant from a normalized, validated draft
	// and returns the created record with a fresh unique id.
	CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error)
}

// MemoryStore is an in-memory Store. Reads hand out copies so callers cannot
// mutate the catalog behind the store's back.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	tenants map[string]*Tenant
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tenants: make(map[string]*Tenant)}
}

// NewFixtureStore creates a store seeded with the demo tenant catalog.
func NewFixtureStore() *MemoryStore {
	s := NewMemoryStore()
	for _, t := range fixtureTenants() {
		s.insert(t)
	}
	return s
}

func (s *MemoryStore) insert(t *Tenant) {
	s.order = append(s.order, t.ID)
	s.tenants[t.ID] = t
}

// ListTenants returns all tenants in insertion order.
func (s *MemoryStore) ListTenants(ctx context.Context) ([]Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Tenant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneTenant(s.tenants[id]))
	}
	return out, nil
}

// GetTenant looks a tenant up by id.
func (s *MemoryStore) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	c := cloneTenant(t)
	return &c, nil
}

// UsersOf returns a tenant's users, empty when the tenant is absent.
func (s *MemoryStore) UsersOf(ctx context.Context, tenantID string) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return []User{}, nil
	}
	return append([]User{}, t.Users...), nil
}

// TeamsOf returns a tenant's teams, empty when the tenant is absent.
func (s *MemoryStore) TeamsOf(ctx context.Context, tenantID string) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return []Team{}, nil
	}
	return append([]Team{}, t.Teams...), nil
}

// TeamOf looks a team up within a tenant.
func (s *MemoryStore) TeamOf(ctx context.Context, tenantID, teamID string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, ErrTenantNotFound
	}
	for i := range t.Teams {
		if t.Teams[i].TeamID == teamID {
			team := t.Teams[i]
			return &team, nil
		}
	}
	return nil, ErrTeamNotFound
}

// UserOf looks a user up within a tenant.
func (s *MemoryStore) UserOf(ctx context.Context, tenantID, userID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, ErrTenantNotFound
	}
	for i := range t.Users {
		if t.Users[i].UserID == userID {
			user := t.Users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// PrimaryTeamOf resolves a user's TeamID through TeamOf.
func (s *MemoryStore) PrimaryTeamOf(ctx context.Context, tenantID, userID string) (*Team, error) {
	user, err := s.UserOf(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if user.TeamID == nil {
		return nil, ErrTeamNotFound
	}
	return s.TeamOf(ctx, tenantID, *user.TeamID)
}

// CreateTenant provisions a tenant from the draft. The draft is normalized
// and validated here so every entry point gets the same defaulting.
func (s *MemoryStore) CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Tenant{
		ID:                 "client-" + uuid.NewString(),
		Name:               req.Name,
		SubscribedProducts: append([]string{}, req.SubscribedProducts...),
		IdentityType:       req.IdentityType,
		SSO:                req.SSO,
		ExistingClient:     req.ExistingClient,
		Users:              []User{},
		Teams:              []Team{},
	}
	s.insert(t)
	c := cloneTenant(t)
	return &c, nil
}

func cloneTenant(t *Tenant) Tenant {
	c := *t
	c.SubscribedProducts = append([]string{}, t.SubscribedProducts...)
	c.Users = append([]User{}, t.Users...)
	c.Teams = append([]Team{}, t.Teams...)
	return c
}
