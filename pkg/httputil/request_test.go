package httputil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid JSON",
			body:        `{"clientName": "Acme Corporation"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			body:        `{invalid}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/test", bytes.NewBufferString(tt.body))
			var dest map[string]string

			err := ParseJSON(req, &dest)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Acme Corporation", dest["clientName"])
			}
		})
	}
}

func TestParseJSONOrError(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/test", bytes.NewBufferString(`{broken`))
	var dest map[string]string

	ok := ParseJSONOrError(w, req, &dest)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParsePathString(t *testing.T) {
	req := httptest.NewRequest("GET", "/clients/client-1", nil)
	req = mux.SetURLVars(req, map[string]string{"client_id": "client-1"})

	val, err := ParsePathString(req, "client_id")

	assert.NoError(t, err)
	assert.Equal(t, "client-1", val)

	_, err = ParsePathString(req, "missing")
	assert.Error(t, err)
}

func TestParsePathStringOrError(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/clients/", nil)

	_, ok := ParsePathStringOrError(w, req, "client_id")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseQueryString(t *testing.T) {
	req := httptest.NewRequest("GET", "/clients?search=acme", nil)

	assert.Equal(t, "acme", ParseQueryString(req, "search", ""))
	assert.Equal(t, "all", ParseQueryString(req, "status", "all"))
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/clients?page=3&limit=abc", nil)

	assert.Equal(t, 3, ParseQueryInt(req, "page", 1))
	// Malformed values fall back to the default.
	assert.Equal(t, 10, ParseQueryInt(req, "limit", 10))
	assert.Equal(t, 1, ParseQueryInt(req, "missing", 1))
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest("GET", "/users?unassigned=true&bad=banana", nil)

	assert.True(t, ParseQueryBool(req, "unassigned", false))
	assert.False(t, ParseQueryBool(req, "bad", false))
	assert.True(t, ParseQueryBool(req, "missing", true))
}

func TestRequireNonEmpty(t *testing.T) {
	w := httptest.NewRecorder()

	assert.True(t, RequireNonEmpty(w, "Acme", "clientName"))

	w = httptest.NewRecorder()
	assert.False(t, RequireNonEmpty(w, "   ", "clientName"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "clientName is required")
}

func TestValidateAll(t *testing.T) {
	w := httptest.NewRecorder()

	ok := ValidateAll(w,
		func() (bool, string) { return true, "" },
		func() (bool, string) { return false, "roleName is required" },
		func() (bool, string) { return false, "never reached" },
	)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "roleName is required")
	assert.NotContains(t, w.Body.String(), "never reached")
}
