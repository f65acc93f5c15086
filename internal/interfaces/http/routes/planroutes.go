package routes

import (
	"github.com/gin-gonic/gin"

	"f3manager/internal/interfaces/http/handlers"
	"f3manager/internal/interfaces/http/middleware"
)

// PlanRouteConfig holds dependencies for plan routes.
type PlanRouteConfig struct {
	PlanHandler          *handlers.PlanHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupPlanRoutes configures plan routes. Reads are open to all staff,
// writes need the admin role.
func SetupPlanRoutes(api *gin.RouterGroup, cfg *PlanRouteConfig) {
	plans := api.Group("/plans")
	{
		plans.GET("", cfg.PlanHandler.ListPlans)
		plans.GET("/:id", cfg.PlanHandler.GetPlan)

		admin := plans.Group("")
		admin.Use(cfg.PermissionMiddleware.RequireAdmin())
		{
			admin.POST("", cfg.PlanHandler.CreatePlan)
			admin.PATCH("/:id", cfg.PlanHandler.UpdatePlan)
			admin.POST("/:id/deactivate", cfg.PlanHandler.DeactivatePlan)
			admin.DELETE("/:id", cfg.PlanHandler.DeletePlan)
		}
	}
}
