package shared

import (
	"math"
	"net/url"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes pagination metadata for a known total.
func NewPagination(page, limit, total int) Pagination {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	pages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads page/limit query parameters. Page must be >= 1 and
// limit within 1..100; anything else is a validation failure.
func ParsePagination(query url.Values) (page, limit int, err error) {
	page, limit = 1, defaultPageSize
	if raw := query.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, Validation("Invalid pagination parameters", map[string]string{"page": "must be an integer >= 1"})
		}
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxPageSize {
			return 0, 0, Validation("Invalid pagination parameters", map[string]string{"limit": "must be an integer between 1 and 100"})
		}
	}
	return page, limit, nil
}
