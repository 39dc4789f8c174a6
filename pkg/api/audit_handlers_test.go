package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfone/console/pkg/audit"
)

func newAuditServer(t *testing.T) (*Server, *audit.Store) {
	t.Helper()

	store, err := audit.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := newTestServer(t, func(opts *Options) {
		opts.Audit = store
		opts.AuditSearch = store
	})
	return s, store
}

func TestSearchAudit(t *testing.T) {
	s, store := newAuditServer(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx,
		audit.NewEvent(ctx, audit.EventImpersonationStart, audit.StatusSuccess).
			WithResource("alice.smith@acme.com")))
	require.NoError(t, store.Record(ctx,
		audit.NewEvent(ctx, audit.EventRoleTemplateSave, audit.StatusSuccess).
			WithTenant(acmeID)))

	rr := doRequest(t, s, http.MethodGet, "/api/v1/audit", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	page := decodePage(t, rr)
	require.Equal(t, 2, page.Total)

	// Newest first.
	var first audit.Event
	require.NoError(t, jsonUnmarshalFirst(page, &first))
	assert.Equal(t, audit.EventRoleTemplateSave, first.EventType)
}

func TestSearchAuditFilters(t *testing.T) {
	s, store := newAuditServer(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx,
		audit.NewEvent(ctx, audit.EventImpersonationDenied, audit.StatusDenied)))
	require.NoError(t, store.Record(ctx,
		audit.NewEvent(ctx, audit.EventTenantCreate, audit.StatusSuccess).WithTenant(acmeID)))

	rr := doRequest(t, s, http.MethodGet, "/api/v1/audit?status=denied", nil)
	assert.Equal(t, 1, decodePage(t, rr).Total)

	rr = doRequest(t, s, http.MethodGet, "/api/v1/audit?tenant_id="+acmeID, nil)
	assert.Equal(t, 1, decodePage(t, rr).Total)

	rr = doRequest(t, s, http.MethodGet, "/api/v1/audit?type=tenant.create,impersonation.denied", nil)
	assert.Equal(t, 2, decodePage(t, rr).Total)
}

func TestSearchAuditBadTimestamp(t *testing.T) {
	s, _ := newAuditServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/audit?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMutationsAreAudited(t *testing.T) {
	s, store := newAuditServer(t)

	rr := doRequest(t, s, http.MethodPost, "/api/v1/clients", map[string]interface{}{
		"name":               "Audited Co",
		"subscribedProducts": []string{"Assess"},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	events, err := store.Search(context.Background(), audit.SearchFilter{
		EventTypes: []audit.EventType{audit.EventTenantCreate},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.StatusSuccess, events[0].Status)
	assert.Equal(t, "Audited Co", events[0].Message)
	// With auth disabled the local session middleware stamps the actor.
	assert.Equal(t, "local", events[0].Operator)
}

func TestAuditRouteAbsentWithoutStore(t *testing.T) {
	s := newTestServer(t)
	rr := doRequest(t, s, http.MethodGet, "/api/v1/audit", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
