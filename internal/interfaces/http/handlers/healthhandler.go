package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/version"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	logger logger.Interface
}

func NewHealthHandler(db Pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HealthCheck handles GET /health. A failing database ping answers 503.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status, code, dbStatus := "healthy", http.StatusOK, "up"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Errorw("database ping failed", "error", err)
			status, code, dbStatus = "unhealthy", http.StatusServiceUnavailable, "down"
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"service":  "f3manager",
		"database": dbStatus,
	})
}

// Version handles GET /version to return the current application version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.String(),
	})
}
