package httputil

import "net/http"

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// PageParams are the pagination query parameters of a list request.
type PageParams struct {
	Page  int
	Limit int
}

// ParsePageParams reads page and limit from the query string. Page defaults
// to 1, limit to 10, and limit is capped at 100.
func ParsePageParams(r *http.Request) PageParams {
	page := ParseQueryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := ParseQueryInt(r, "limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return PageParams{Page: page, Limit: limit}
}

// Offset returns the index of the first record on the page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the envelope every list endpoint returns.
type Page struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
}

// NewPage builds the envelope for one page of an already-windowed result set.
// total is the size of the full filtered set, not the page.
func NewPage(data interface{}, total int, params PageParams) Page {
	totalPages := (total + params.Limit - 1) / params.Limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Page{
		Data:       data,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}
}

// WritePage writes a pagination envelope with status 200.
func WritePage(w http.ResponseWriter, page Page) error {
	return WriteJSON(w, http.StatusOK, page)
}

// PageBounds clips the window [offset, offset+limit) to a slice of length n
// and returns the start and end indexes. An out-of-range page yields an
// empty window.
func PageBounds(n int, params PageParams) (start, end int) {
	start = params.Offset()
	if start > n {
		start = n
	}
	end = start + params.Limit
	if end > n {
		end = n
	}
	return start, end
}
