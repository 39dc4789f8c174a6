package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kfone/console/pkg/audit"
	"github.com/kfone/console/pkg/contextkeys"
	"github.com/kfone/console/pkg/httputil"
	"github.com/kfone/console/pkg/middleware"
)

// handleLogin starts the sign-in handshake. The caller supplies its session
// header; the state parameter ties the Keycloak redirect back to it.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(middleware.SessionHeader)
	if sessionID == "" {
		httputil.WriteBadRequest(w, "missing "+middleware.SessionHeader+" header")
		return
	}

	state := uuid.NewString()
	nonce := uuid.NewString()
	loginHint := httputil.ParseQueryString(r, "login_hint", "")

	s.loginMu.Lock()
	s.pruneLoginsLocked()
	s.logins[state] = pendingLogin{
		nonce:     nonce,
		sessionID: sessionID,
		expires:   time.Now().Add(loginStateTTL),
	}
	s.loginMu.Unlock()

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"authUrl": s.opts.Provider.AuthURL(state, nonce, loginHint),
		"state":   state,
	})
}

func (s *Server) pruneLoginsLocked() {
	now := time.Now()
	for state, pending := range s.logins {
		if now.After(pending.expires) {
			delete(s.logins, state)
		}
	}
}

// handleCallback finishes the handshake: code exchange, ID-token
// verification, and session activation.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	code := httputil.ParseQueryString(r, "code", "")
	state := httputil.ParseQueryString(r, "state", "")
	if code == "" || state == "" {
		httputil.WriteBadRequest(w, "code and state are required")
		return
	}

	s.loginMu.Lock()
	pending, ok := s.logins[state]
	delete(s.logins, state)
	s.loginMu.Unlock()
	if !ok || time.Now().After(pending.expires) {
		httputil.WriteBadRequest(w, "unknown or expired login state")
		return
	}

	identity, tokens, err := s.opts.Provider.HandleCallback(r.Context(), code, pending.nonce)
	if err != nil {
		s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventAuthLogin, audit.StatusFailure).
			WithError(err))
		httputil.WriteUnauthorized(w, "sign-in failed")
		return
	}

	mgr := s.opts.Sessions.GetOrCreate(pending.sessionID)
	mgr.OnAuthSuccess(identity, tokens)
	if s.opts.Metrics != nil {
		s.opts.Metrics.SessionsActive.Inc()
	}

	ctx := r.Context()
	s.record(ctx, audit.NewEvent(ctx, audit.EventAuthLogin, audit.StatusSuccess).
		WithResource(identity.Email))
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"identity":  identity,
		"sessionId": pending.sessionID,
	})
}

// handleMe reports who the session is acting as. While impersonating, the
// current identity is the impersonated user and operator names the real one.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	mgr, ok := s.sessionManager(r)
	if !ok {
		httputil.WriteUnauthorized(w, "no active session")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"current":         mgr.CurrentIdentity(),
		"operator":        mgr.Operator(),
		"isImpersonating": mgr.IsImpersonating(),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	mgr, ok := s.sessionManager(r)
	if !ok {
		httputil.WriteUnauthorized(w, "no active session")
		return
	}

	wasImpersonating := mgr.IsImpersonating()
	operator := mgr.Operator().Email
	mgr.OnAuthLogout(r.Context())
	s.opts.Sessions.Remove(contextkeys.GetSessionID(r.Context()))
	s.dropWizard(r)

	if s.opts.Metrics != nil {
		s.opts.Metrics.SessionsActive.Dec()
		if wasImpersonating {
			s.opts.Metrics.ImpersonationsActive.Dec()
		}
	}
	s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventAuthLogout, audit.StatusSuccess).
		WithResource(operator))
	httputil.WriteNoContent(w)
}

// handleRefresh runs the expiry policy: one silent refresh attempt, forced
// logout on failure.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	mgr, ok := s.sessionManager(r)
	if !ok {
		httputil.WriteUnauthorized(w, "no active session")
		return
	}

	err := mgr.HandleTokenExpired(r.Context())
	if err != nil {
		if s.opts.Metrics != nil {
			s.opts.Metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
			s.opts.Metrics.SessionsActive.Dec()
		}
		s.opts.Sessions.Remove(contextkeys.GetSessionID(r.Context()))
		s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventAuthRefreshFailed, audit.StatusFailure).
			WithError(err))
		httputil.WriteUnauthorized(w, "token refresh failed; signed out")
		return
	}

	if s.opts.Metrics != nil {
		s.opts.Metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	}
	httputil.WriteNoContent(w)
}

// dropWizard discards the session's role draft, if any. Logout abandons the
// draft the same way navigating away does.
func (s *Server) dropWizard(r *http.Request) {
	sessionID := r.Header.Get(middleware.SessionHeader)
	if sessionID == "" {
		return
	}
	s.wizardMu.Lock()
	delete(s.wizards, sessionID)
	s.wizardMu.Unlock()
}
