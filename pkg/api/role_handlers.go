package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kfone/console/pkg/audit"
	"github.com/kfone/console/pkg/httputil"
	"github.com/kfone/console/pkg/middleware"
	"github.com/kfone/console/pkg/roles"
)

// handleListRoles lists a client's role templates, built-ins included. The
// built-in starter templates carry no tenant id and show up for every client.
func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromRequest(r)

	all, err := s.opts.Roles.List(r.Context(), "")
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	search := strings.ToLower(httputil.ParseQueryString(r, "search", ""))
	roleType := httputil.ParseQueryString(r, "role_type", "")
	userType := httputil.ParseQueryString(r, "user_type", "")

	filtered := make([]roles.Template, 0, len(all))
	for _, tpl := range all {
		if tpl.TenantID != "" && tpl.TenantID != tenant.ID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(tpl.RoleName), search) {
			continue
		}
		if roleType != "" && string(tpl.RoleType) != roleType {
			continue
		}
		if userType != "" && string(tpl.UserType) != userType {
			continue
		}
		filtered = append(filtered, tpl)
	}

	params := httputil.ParsePageParams(r)
	start, end := httputil.PageBounds(len(filtered), params)
	httputil.WritePage(w, httputil.NewPage(filtered[start:end], len(filtered), params))
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	roleID, ok := httputil.ParsePathStringOrError(w, r, "role_id")
	if !ok {
		return
	}

	tpl, err := s.opts.Roles.Get(r.Context(), roleID)
	if errors.Is(err, roles.ErrTemplateNotFound) {
		httputil.WriteNotFoundError(w, "role template not found")
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tpl)
}

func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	roleID, ok := httputil.ParsePathStringOrError(w, r, "role_id")
	if !ok {
		return
	}

	// Built-in starter templates are shared across every client and are not
	// deletable through the API.
	if strings.HasPrefix(roleID, "builtin-") {
		httputil.WriteForbidden(w, "built-in role templates cannot be deleted")
		return
	}

	err := s.opts.Roles.Delete(r.Context(), roleID)
	if errors.Is(err, roles.ErrTemplateNotFound) {
		httputil.WriteNotFoundError(w, "role template not found")
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventRoleTemplateDelete, audit.StatusSuccess).
		WithResource(roleID))
	httputil.WriteNoContent(w)
}
