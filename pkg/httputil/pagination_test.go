package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  PageParams
	}{
		{"defaults", "", PageParams{Page: 1, Limit: 10}},
		{"explicit", "?page=2&limit=25", PageParams{Page: 2, Limit: 25}},
		{"zero page clamps to first", "?page=0", PageParams{Page: 1, Limit: 10}},
		{"negative limit falls back", "?limit=-5", PageParams{Page: 1, Limit: 10}},
		{"limit capped", "?limit=5000", PageParams{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/clients"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePageParams(req))
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, PageParams{Page: 3, Limit: 10}.Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b"}, 42, PageParams{Page: 1, Limit: 10})

	assert.Equal(t, 42, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 5, page.TotalPages)
}

func TestNewPageEmptySet(t *testing.T) {
	page := NewPage([]string{}, 0, PageParams{Page: 1, Limit: 10})

	// An empty result set still reports one (empty) page.
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 0, page.Total)
}

func TestPageBounds(t *testing.T) {
	start, end := PageBounds(25, PageParams{Page: 3, Limit: 10})
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = PageBounds(25, PageParams{Page: 9, Limit: 10})
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestWritePage(t *testing.T) {
	w := httptest.NewRecorder()

	err := WritePage(w, NewPage([]string{"acme"}, 1, PageParams{Page: 1, Limit: 10}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "data")
	assert.Contains(t, body, "total")
	assert.Contains(t, body, "totalPages")
}
