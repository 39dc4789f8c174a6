package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/kfone/console/pkg/audit"
	"github.com/kfone/console/pkg/httputil"
)

// handleSearchAudit pages through recorded audit events, newest first.
// Filters: operator, tenant_id, status, type (comma-separated event types),
// from/to (RFC 3339).
func (s *Server) handleSearchAudit(w http.ResponseWriter, r *http.Request) {
	params := httputil.ParsePageParams(r)

	filter := audit.SearchFilter{
		Operator: httputil.ParseQueryString(r, "operator", ""),
		TenantID: httputil.ParseQueryString(r, "tenant_id", ""),
		Status:   audit.EventStatus(httputil.ParseQueryString(r, "status", "")),
		Limit:    params.Limit,
		Offset:   params.Offset(),
	}

	if types := httputil.ParseQueryString(r, "type", ""); types != "" {
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.EventTypes = append(filter.EventTypes, audit.EventType(t))
			}
		}
	}
	if from, ok := parseTimeParam(w, r, "from"); !ok {
		return
	} else if from != nil {
		filter.Start = from
	}
	if to, ok := parseTimeParam(w, r, "to"); !ok {
		return
	} else if to != nil {
		filter.End = to
	}

	events, err := s.opts.AuditSearch.Search(r.Context(), filter)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	total, err := s.opts.AuditSearch.Count(r.Context(), filter)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	if events == nil {
		events = []audit.Event{}
	}
	httputil.WritePage(w, httputil.NewPage(events, int(total), params))
}

func parseTimeParam(w http.ResponseWriter, r *http.Request, key string) (*time.Time, bool) {
	raw := httputil.ParseQueryString(r, key, "")
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		httputil.WriteValidationError(w, key+" must be an RFC 3339 timestamp")
		return nil, false
	}
	return &t, true
}
