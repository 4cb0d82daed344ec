package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// PageRequest is a parsed page/limit query pair.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta is the pagination block returned under the response meta key.
type PageMeta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// ParsePagination reads page and limit from the query string, falling back
// to defaults and clamping limit to maxLimit.
func ParsePagination(c *gin.Context) PageRequest {
	page := positiveInt(c.Query("page"), defaultPage)
	limit := positiveInt(c.Query("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// NewPageMeta derives the meta block from a total row count.
func NewPageMeta(p PageRequest, total int64) PageMeta {
	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return PageMeta{
		Page:        p.Page,
		Limit:       p.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: int64(p.Page) < totalPages,
		HasPrevPage: p.Page > 1 && totalPages > 0,
	}
}

func positiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
