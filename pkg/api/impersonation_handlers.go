package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kfone/console/pkg/audit"
	"github.com/kfone/console/pkg/httputil"
	"github.com/kfone/console/pkg/keycloak"
	"github.com/kfone/console/pkg/session"
)

type impersonateRequest struct {
	Email string `json:"email"`
}

// handleImpersonate switches the session to act as the named user: admin
// lookup by email, token exchange, then the session-level mode switch.
// Failure at any step leaves the session unchanged.
func (s *Server) handleImpersonate(w http.ResponseWriter, r *http.Request) {
	if s.opts.Impersonator == nil {
		httputil.WriteErrorMessage(w, http.StatusNotImplemented, "impersonation is not configured")
		return
	}

	mgr, ok := s.sessionManager(r)
	if !ok {
		httputil.WriteUnauthorized(w, "no active session")
		return
	}

	var req impersonateRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if !httputil.RequireNonEmpty(w, req.Email, "email") {
		return
	}

	if mgr.IsImpersonating() {
		httputil.WriteConflict(w, session.ErrAlreadyImpersonating.Error())
		return
	}

	identity, tokens, err := s.opts.Impersonator.Impersonate(r.Context(), mgr.AccessToken(), req.Email)
	if err != nil {
		s.impersonationResult("failure")
		switch {
		case errors.Is(err, keycloak.ErrUserNotFound):
			s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventImpersonationDenied, audit.StatusDenied).
				WithResource(req.Email).WithError(err))
			httputil.WriteNotFoundError(w, "no user found with the provided email")
		case keycloak.IsAuthError(err):
			s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventImpersonationDenied, audit.StatusDenied).
				WithResource(req.Email).WithError(err))
			httputil.WriteUnauthorized(w, "impersonation exchange was rejected")
		default:
			s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventImpersonationStart, audit.StatusFailure).
				WithResource(req.Email).WithError(err))
			httputil.WriteErrorMessage(w, http.StatusBadGateway, "impersonation exchange failed")
		}
		return
	}

	if err := mgr.StartImpersonation(r.Context(), identity, tokens); err != nil {
		if errors.Is(err, session.ErrAlreadyImpersonating) {
			httputil.WriteConflict(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	s.impersonationResult("success")
	if s.opts.Metrics != nil {
		s.opts.Metrics.ImpersonationsActive.Inc()
	}
	s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventImpersonationStart, audit.StatusSuccess).
		WithResource(identity.Email))
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"current":         identity,
		"operator":        mgr.Operator(),
		"isImpersonating": true,
	})
}

// handleStopImpersonation returns the session to the operator's own
// identity. Stopping when not impersonating is a no-op, not an error.
func (s *Server) handleStopImpersonation(w http.ResponseWriter, r *http.Request) {
	mgr, ok := s.sessionManager(r)
	if !ok {
		httputil.WriteUnauthorized(w, "no active session")
		return
	}

	if mgr.IsImpersonating() {
		impersonated := mgr.CurrentIdentity().Email
		mgr.StopImpersonation(r.Context())
		if s.opts.Metrics != nil {
			s.opts.Metrics.ImpersonationsActive.Dec()
		}
		s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventImpersonationStop, audit.StatusSuccess).
			WithResource(impersonated))
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"current":         mgr.CurrentIdentity(),
		"isImpersonating": false,
	})
}

func (s *Server) impersonationResult(status string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.ImpersonationsTotal.WithLabelValues(status).Inc()
	}
}
