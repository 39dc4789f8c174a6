package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kfone/console/pkg/audit"
	"github.com/kfone/console/pkg/httputil"
	"github.com/kfone/console/pkg/middleware"
	"github.com/kfone/console/pkg/overlay"
	"github.com/kfone/console/pkg/tenants"
)

// clientSummary is the list-page row; users and teams stay behind the detail
// endpoints.
type clientSummary struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	SubscribedProducts []string             `json:"subscribedProducts"`
	IdentityType       tenants.IdentityType `json:"identityType"`
	SSO                bool                 `json:"sso"`
	ExistingClient     bool                 `json:"isExistingClient"`
	UserCount          int                  `json:"userCount"`
	TeamCount          int                  `json:"teamCount"`
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	all, err := s.opts.Tenants.ListTenants(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	search := strings.ToLower(httputil.ParseQueryString(r, "search", ""))
	identityType := httputil.ParseQueryString(r, "identity_type", "")
	ssoFilter := r.URL.Query().Has("sso")
	ssoWanted := httputil.ParseQueryBool(r, "sso", false)

	filtered := make([]clientSummary, 0, len(all))
	for _, t := range all {
		if search != "" && !strings.Contains(strings.ToLower(t.Name), search) {
			continue
		}
		if identityType != "" && string(t.IdentityType) != identityType {
			continue
		}
		if ssoFilter && t.SSO != ssoWanted {
			continue
		}
		filtered = append(filtered, clientSummary{
			ID:                 t.ID,
			Name:               t.Name,
			SubscribedProducts: t.SubscribedProducts,
			IdentityType:       t.IdentityType,
			SSO:                t.SSO,
			ExistingClient:     t.ExistingClient,
			UserCount:          len(t.Users),
			TeamCount:          len(t.Teams),
		})
	}

	params := httputil.ParsePageParams(r)
	start, end := httputil.PageBounds(len(filtered), params)
	httputil.WritePage(w, httputil.NewPage(filtered[start:end], len(filtered), params))
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req tenants.CreateTenantRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	created, err := s.opts.Tenants.CreateTenant(r.Context(), req)
	if err != nil {
		if tenants.IsValidation(err) {
			s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventTenantCreate, audit.StatusFailure).
				WithMessage(req.Name).WithError(err))
			httputil.WriteValidationError(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventTenantCreate, audit.StatusSuccess).
		WithTenant(created.ID).WithMessage(created.Name))
	httputil.WriteCreated(w, created)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	// The tenant middleware already resolved the route var or wrote the 404.
	httputil.WriteJSON(w, http.StatusOK, middleware.TenantFromRequest(r))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromRequest(r)

	search := strings.ToLower(httputil.ParseQueryString(r, "search", ""))
	teamID := httputil.ParseQueryString(r, "team_id", "")
	unassignedOnly := httputil.ParseQueryBool(r, "unassigned", false)

	filtered := make([]tenants.User, 0, len(tenant.Users))
	for _, u := range tenant.Users {
		if search != "" && !userMatches(u, search) {
			continue
		}
		if unassignedOnly && u.TeamID != nil {
			continue
		}
		if teamID != "" && (u.TeamID == nil || *u.TeamID != teamID) {
			continue
		}
		filtered = append(filtered, u)
	}

	params := httputil.ParsePageParams(r)
	start, end := httputil.PageBounds(len(filtered), params)
	httputil.WritePage(w, httputil.NewPage(filtered[start:end], len(filtered), params))
}

func userMatches(u tenants.User, search string) bool {
	name := strings.ToLower(u.FirstName + " " + u.LastName)
	return strings.Contains(name, search) || strings.Contains(strings.ToLower(u.Email), search)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.userFromRequest(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetPrimaryTeam(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromRequest(r)
	userID, ok := httputil.ParsePathStringOrError(w, r, "user_id")
	if !ok {
		return
	}

	team, err := s.opts.Tenants.PrimaryTeamOf(r.Context(), tenant.ID, userID)
	switch {
	case errors.Is(err, tenants.ErrUserNotFound):
		httputil.WriteNotFoundError(w, "user not found")
	case errors.Is(err, tenants.ErrTeamNotFound):
		httputil.WriteNotFoundError(w, "user has no team assignment")
	case err != nil:
		httputil.WriteInternalError(w, err)
	default:
		httputil.WriteJSON(w, http.StatusOK, team)
	}
}

func (s *Server) handleListUserCountries(w http.ResponseWriter, r *http.Request) {
	user, ok := s.userFromRequest(w, r)
	if !ok {
		return
	}
	countries := overlay.Countries(user)
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"countries": countries,
	})
}

func (s *Server) handleGetCountryAttributes(w http.ResponseWriter, r *http.Request) {
	user, ok := s.userFromRequest(w, r)
	if !ok {
		return
	}
	country, ok := httputil.ParsePathStringOrError(w, r, "country")
	if !ok {
		return
	}

	attrs, err := overlay.AttributesFor(user, country)
	if errors.Is(err, overlay.ErrCountryNotConfigured) {
		httputil.WriteNotFoundError(w, "no attributes configured for country")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, attrs)
}

func (s *Server) userFromRequest(w http.ResponseWriter, r *http.Request) (*tenants.User, bool) {
	tenant := middleware.TenantFromRequest(r)
	userID, ok := httputil.ParsePathStringOrError(w, r, "user_id")
	if !ok {
		return nil, false
	}

	user, err := s.opts.Tenants.UserOf(r.Context(), tenant.ID, userID)
	if errors.Is(err, tenants.ErrUserNotFound) {
		httputil.WriteNotFoundError(w, "user not found")
		return nil, false
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return nil, false
	}
	return user, true
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromRequest(r)
	search := strings.ToLower(httputil.ParseQueryString(r, "search", ""))

	filtered := make([]tenants.Team, 0, len(tenant.Teams))
	for _, t := range tenant.Teams {
		if search != "" && !strings.Contains(strings.ToLower(t.Name), search) {
			continue
		}
		filtered = append(filtered, t)
	}

	params := httputil.ParsePageParams(r)
	start, end := httputil.PageBounds(len(filtered), params)
	httputil.WritePage(w, httputil.NewPage(filtered[start:end], len(filtered), params))
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromRequest(r)
	teamID, ok := httputil.ParsePathStringOrError(w, r, "team_id")
	if !ok {
		return
	}

	team, err := s.opts.Tenants.TeamOf(r.Context(), tenant.ID, teamID)
	if errors.Is(err, tenants.ErrTeamNotFound) {
		httputil.WriteNotFoundError(w, "team not found")
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, team)
}
