package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"f3manager/internal/infrastructure/metrics"
)

// Metrics records request counts and latency labelled by route template, so
// /members/1 and /members/2 share one series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
