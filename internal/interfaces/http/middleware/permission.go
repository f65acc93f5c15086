package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

// PermissionMiddleware puts the same gate the use cases consult in front of
// restricted route groups, so forbidden calls are rejected before binding.
type PermissionMiddleware struct {
	gate   authorization.Gate
	logger logger.Interface
}

func NewPermissionMiddleware(gate authorization.Gate, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		gate:   gate,
		logger: logger,
	}
}

// RequireAdmin allows only actors the gate lets administer.
func (m *PermissionMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.require("administer", m.gate.CanAdminister)
}

// RequireOperator allows any actor with front-desk rights.
func (m *PermissionMiddleware) RequireOperator() gin.HandlerFunc {
	return m.require("operate", m.gate.CanOperate)
}

func (m *PermissionMiddleware) require(capability string, allowed func(authorization.Actor) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := utils.GetActor(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "staff not authenticated")
			c.Abort()
			return
		}

		if !allowed(actor) {
			m.logger.Warnw("permission denied",
				"staff_id", actor.StaffID,
				"role", actor.Role,
				"capability", capability,
				"path", c.FullPath(),
			)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
