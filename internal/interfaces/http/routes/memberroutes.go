package routes

import (
	"github.com/gin-gonic/gin"

	"f3manager/internal/interfaces/http/handlers"
	"f3manager/internal/interfaces/http/middleware"
)

// MemberRouteConfig holds dependencies for member routes.
type MemberRouteConfig struct {
	MemberHandler        *handlers.MemberHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupMemberRoutes configures member routes on an authenticated group.
func SetupMemberRoutes(api *gin.RouterGroup, cfg *MemberRouteConfig) {
	members := api.Group("/members")
	{
		members.POST("", cfg.MemberHandler.CreateMember)
		members.GET("", cfg.MemberHandler.ListMembers)
		members.GET("/:id", cfg.MemberHandler.GetMember)
		members.PATCH("/:id", cfg.MemberHandler.UpdateMember)
		members.DELETE("/:id", cfg.MemberHandler.DeleteMember)
		members.DELETE("/:id/purge", cfg.PermissionMiddleware.RequireAdmin(), cfg.MemberHandler.PurgeMember)

		members.GET("/:id/subscription", cfg.MemberHandler.GetActiveSubscription)
		members.GET("/:id/payments", cfg.MemberHandler.ListMemberPayments)
		members.GET("/:id/attendance", cfg.MemberHandler.ListMemberAttendance)
	}
}
