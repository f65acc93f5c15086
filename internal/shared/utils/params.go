package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
)

// ParseIDParam parses a positive numeric id from a URL path parameter.
// entityName is used in error messages (e.g., "member", "payment").
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID %q", entityName, raw))
	}
	return uint(id), nil
}

// ParseOptionalUintQuery parses an optional positive numeric query parameter.
func ParseOptionalUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s %q", key, raw))
	}
	v := uint(n)
	return &v, nil
}

// ParseOptionalDateQuery parses an optional YYYY-MM-DD query parameter.
func ParseOptionalDateQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := biztime.ParseDate(raw)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s", key), "expected YYYY-MM-DD")
	}
	return &d, nil
}

// ParseBoolQuery parses a boolean query parameter with a default value.
func ParseBoolQuery(c *gin.Context, key string, defaultVal bool) bool {
	if raw := c.Query(key); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return defaultVal
}

// ParseIntQuery parses an integer query parameter, clamped to [min, max].
func ParseIntQuery(c *gin.Context, key string, defaultVal, min, max int) int {
	v := defaultVal
	if raw := c.Query(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			v = n
		}
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

// ParseOptionalIntQuery parses an optional integer query parameter. Absent
// values yield 0 so callers can apply their own default and range checks.
func ParseOptionalIntQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s %q", key, raw))
	}
	return n, nil
}
