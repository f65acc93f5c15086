package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"f3manager/internal/shared/constants"
)

// Pagination holds normalized skip/limit paging parameters.
type Pagination struct {
	Skip  int
	Limit int
}

// Page returns the 1-based page number that Skip falls on.
func (p Pagination) Page() int {
	if p.Limit == 0 {
		return 1
	}
	return p.Skip/p.Limit + 1
}

// ValidatePagination validates and normalizes skip/limit.
// Skip defaults to 0, limit defaults to DefaultPageSize and is capped at MaxPageSize.
func ValidatePagination(skip, limit int) Pagination {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	return Pagination{Skip: skip, Limit: limit}
}

// ParsePagination reads skip/limit from the query string. The page/page_size
// pair is accepted too and converted to the equivalent skip.
func ParsePagination(c *gin.Context) Pagination {
	limit := parseQueryInt(c, "limit", 0)
	if limit == 0 {
		limit = parseQueryInt(c, "page_size", constants.DefaultPageSize)
	}
	skip := parseQueryInt(c, "skip", -1)
	if skip < 0 {
		page := parseQueryInt(c, "page", constants.DefaultPage)
		if page < 1 {
			page = constants.DefaultPage
		}
		skip = (page - 1) * limit
	}
	return ValidatePagination(skip, limit)
}

// parseQueryInt parses a non-negative integer query parameter with a default value.
func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			return n
		}
	}
	return defaultVal
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize == 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
