package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// refreshMinValidity is the minimum remaining token validity requested on a
// silent refresh, matching the console's identity-provider configuration.
const refreshMinValidity = 70 * time.Second

// ErrNotAuthenticated is returned when an operation needs a logged-in
// operator.
var ErrNotAuthenticated = errors.New("no authenticated operator")

// ErrAlreadyImpersonating is returned when starting impersonation while a
// previous impersonation is still active.
var ErrAlreadyImpersonating = errors.New("already impersonating a user")

// Identity is a display identity taken from verified token claims.
type Identity struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TokenPair is an access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Refresher silently renews the operator's token pair.
type Refresher interface {
	Refresh(ctx context.Context, current TokenPair, minValidity time.Duration) (TokenPair, error)
}

// ImpersonationState is the whitelisted slice of session state that survives
// restarts.
type ImpersonationState struct {
	Identity Identity  `json:"identity"`
	Tokens   TokenPair `json:"tokens"`
}

// PersistStore persists the impersonation whitelist per session.
type PersistStore interface {
	SaveImpersonation(ctx context.Context, sessionID string, state ImpersonationState) error
	LoadImpersonation(ctx context.Context, sessionID string) (*ImpersonationState, error)
	ClearImpersonation(ctx context.Context, sessionID string) error
}

// Manager is one operator session's auth state. Safe for concurrent use.
type Manager struct {
	mu sync.RWMutex

	sessionID string
	refresher Refresher
	persist   PersistStore

	authenticated bool
	operator      Identity
	tokens        TokenPair

	impersonating bool
	impersonated  Identity
	impTokens     TokenPair
}

// Option configures a Manager.
type Option func(*Manager)

// WithRefresher wires the silent token refresher.
func WithRefresher(r Refresher) Option {
	return func(m *Manager) { m.refresher = r }
}

// WithPersistence wires the impersonation whitelist store.
func WithPersistence(store PersistStore) Option {
	return func(m *Manager) { m.persist = store }
}

// NewManager creates a session manager keyed by session id.
func NewManager(sessionID string, opts ...Option) *Manager {
	m := &Manager{sessionID: sessionID}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnAuthSuccess records the operator identity and token pair after a
// successful login or silent SSO check.
func (m *Manager) OnAuthSuccess(identity Identity, tokens TokenPair) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authenticated = true
	m.operator = identity
	m.tokens = tokens
}

// OnAuthLogout clears impersonation state first, then authenticated state.
func (m *Manager) OnAuthLogout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearImpersonationLocked(ctx)
	m.clearAuthLocked()
}

// OnAuthError is the identity-provider error hook; it behaves like a logout
// so no stale credentials linger.
func (m *Manager) OnAuthError(ctx context.Context) {
	m.OnAuthLogout(ctx)
}

// HandleTokenExpired attempts one silent refresh. On failure the session is
// forcibly logged out, impersonation included, and the refresh error is
// returned.
func (m *Manager) HandleTokenExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.authenticated {
		return ErrNotAuthenticated
	}
	if m.refresher == nil {
		m.clearImpersonationLocked(ctx)
		m.clearAuthLocked()
		return errors.New("no token refresher configured")
	}

	refreshed, err := m.refresher.Refresh(ctx, m.tokens, refreshMinValidity)
	if err != nil {
		m.clearImpersonationLocked(ctx)
		m.clearAuthLocked()
		return fmt.Errorf("token refresh failed, session terminated: %w", err)
	}
	m.tokens = refreshed
	return nil
}

// StartImpersonation switches the session into impersonation mode. The
// exchange itself happens before this call; failure there leaves the session
// untouched.
func (m *Manager) StartImpersonation(ctx context.Context, identity Identity, tokens TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.authenticated {
		return ErrNotAuthenticated
	}
	if m.impersonating {
		return ErrAlreadyImpersonating
	}

	m.impersonating = true
	m.impersonated = identity
	m.impTokens = tokens

	if m.persist != nil {
		if err := m.persist.SaveImpersonation(ctx, m.sessionID, ImpersonationState{
			Identity: identity,
			Tokens:   tokens,
		}); err != nil {
			return fmt.Errorf("failed to persist impersonation state: %w", err)
		}
	}
	return nil
}

// StopImpersonation synchronously clears impersonation state and its cached
// display identity.
func (m *Manager) StopImpersonation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearImpersonationLocked(ctx)
}

// Restore rehydrates persisted impersonation state after a restart. A session
// with nothing persisted is left unchanged.
func (m *Manager) Restore(ctx context.Context) error {
	if m.persist == nil {
		return nil
	}
	state, err := m.persist.LoadImpersonation(ctx, m.sessionID)
	if err != nil {
		return fmt.Errorf("failed to restore impersonation state: %w", err)
	}
	if state == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.impersonating = true
	m.impersonated = state.Identity
	m.impTokens = state.Tokens
	return nil
}

// Authenticated reports whether an operator is logged in.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// IsImpersonating reports whether the session is in impersonation mode.
func (m *Manager) IsImpersonating() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.impersonating
}

// CurrentIdentity returns the display identity: the impersonated user while
// impersonating, the operator otherwise.
func (m *Manager) CurrentIdentity() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.impersonating {
		return m.impersonated
	}
	return m.operator
}

// Operator always returns the real operator identity.
func (m *Manager) Operator() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.operator
}

// AccessToken returns the token requests should act with: the exchanged
// token while impersonating, the operator's otherwise.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.impersonating {
		return m.impTokens.AccessToken
	}
	return m.tokens.AccessToken
}

func (m *Manager) clearImpersonationLocked(ctx context.Context) {
	m.impersonating = false
	m.impersonated = Identity{}
	m.impTokens = TokenPair{}
	if m.persist != nil {
		// Best effort; a failed clear must not block logout.
		_ = m.persist.ClearImpersonation(ctx, m.sessionID)
	}
}

func (m *Manager) clearAuthLocked() {
	m.authenticated = false
	m.operator = Identity{}
	m.tokens = TokenPair{}
}
