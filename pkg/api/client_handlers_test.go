package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfone/console/pkg/tenants"
)

func TestListClients(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	page := decodePage(t, rr)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, page.Total, len(page.Data))

	var first clientSummary
	require.NoError(t, jsonUnmarshalFirst(page, &first))
	assert.Equal(t, "Acme Corporation", first.Name)
	assert.Equal(t, 5, first.UserCount)
	assert.Equal(t, 3, first.TeamCount)
}


func TestListClientsSearch(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients?search=acme", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	page := decodePage(t, rr)
	require.Equal(t, 1, page.Total)

	var row clientSummary
	require.NoError(t, jsonUnmarshalFirst(page, &row))
	assert.Equal(t, acmeID, row.ID)
}

func TestListClientsIdentityTypeFilter(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients?identity_type=KF1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	page := decodePage(t, rr)
	require.NotZero(t, page.Total)
	for i := 0; i < len(page.Data); i++ {
		var row clientSummary
		require.NoError(t, jsonUnmarshalAt(page, i, &row))
		assert.Equal(t, tenants.IdentityKF1, row.IdentityType)
	}
}

func TestListClientsPagination(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients?page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	page := decodePage(t, rr)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.Limit)
	assert.GreaterOrEqual(t, page.TotalPages, 2)
}

func TestCreateClient(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodPost, "/api/v1/clients", map[string]interface{}{
		"name":               "Initech",
		"subscribedProducts": []string{"Assess"},
		"isExistingClient":   true,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created tenants.Tenant
	decodeBody(t, rr, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Initech", created.Name)
	// Existing clients on the KF1 default move to Hub.
	assert.Equal(t, tenants.IdentityHub, created.IdentityType)

	// Immediately visible to the list.
	rr = doRequest(t, s, http.MethodGet, "/api/v1/clients?search=initech", nil)
	page := decodePage(t, rr)
	assert.Equal(t, 1, page.Total)
}

func TestCreateClientValidation(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodPost, "/api/v1/clients", map[string]interface{}{
		"name": "No Products Inc",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "at least one product")
}

func TestGetClient(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var tenant tenants.Tenant
	decodeBody(t, rr, &tenant)
	assert.Equal(t, "Acme Corporation", tenant.Name)
	assert.Len(t, tenant.Users, 5)
}

func TestGetClientNotFound(t *testing.T) {
	s := newTestServer(t)
	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/no-such-client", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "client not found")
}

func TestListUsers(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/users", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, decodePage(t, rr).Total)
}

func TestListUsersSearch(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/users?search=alice", nil)
	page := decodePage(t, rr)
	require.Equal(t, 1, page.Total)

	var user tenants.User
	require.NoError(t, jsonUnmarshalFirst(page, &user))
	assert.Equal(t, "alice.smith@acme.com", user.Email)
}

func TestListUsersUnassigned(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/users?unassigned=true", nil)
	page := decodePage(t, rr)
	require.Equal(t, 1, page.Total)

	var user tenants.User
	require.NoError(t, jsonUnmarshalFirst(page, &user))
	assert.Equal(t, mikeID, user.UserID)
	assert.Nil(t, user.TeamID)
}

func TestListUsersByTeam(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/users?team_id="+profileTeam, nil)
	assert.Equal(t, 2, decodePage(t, rr).Total)
}

func TestGetUser(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/users/"+aliceID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var user tenants.User
	decodeBody(t, rr, &user)
	assert.Equal(t, "Alice", user.FirstName)

	rr = doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/users/nobody", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetPrimaryTeam(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/users/"+aliceID+"/team", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var team tenants.Team
	decodeBody(t, rr, &team)
	assert.Equal(t, "Profile User", team.Name)
}

func TestGetPrimaryTeamUnassigned(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/users/"+mikeID+"/team", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "no team assignment")
}

func TestListUserCountries(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/users/"+aliceID+"/countries", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Countries []string `json:"countries"`
	}
	decodeBody(t, rr, &body)
	assert.Equal(t, []string{"United States", "Canada"}, body.Countries)
}

func TestGetCountryAttributes(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet,
		"/api/v1/clients/"+acmeID+"/users/"+aliceID+"/countries/Canada", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var attrs tenants.CountryAttributes
	decodeBody(t, rr, &attrs)
	assert.Equal(t, "Canada", attrs.Country)
	assert.True(t, attrs.Attributes.AccessByLevel)
}

func TestGetCountryAttributesNotConfigured(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet,
		"/api/v1/clients/"+acmeID+"/users/"+aliceID+"/countries/France", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListTeams(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/teams", nil)
	assert.Equal(t, 3, decodePage(t, rr).Total)

	rr = doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/teams?search=admin", nil)
	page := decodePage(t, rr)
	require.Equal(t, 1, page.Total)

	var team tenants.Team
	require.NoError(t, jsonUnmarshalFirst(page, &team))
	assert.Equal(t, "Super Admin", team.Name)
}

func TestGetTeam(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/teams/"+profileTeam, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var team tenants.Team
	decodeBody(t, rr, &team)
	assert.Len(t, team.Members, 2)

	rr = doRequest(t, s, http.MethodGet, "/api/v1/clients/"+acmeID+"/teams/no-such-team", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
