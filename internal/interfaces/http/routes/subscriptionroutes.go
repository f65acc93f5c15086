package routes

import (
	"github.com/gin-gonic/gin"

	"f3manager/internal/interfaces/http/handlers"
	"f3manager/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler  *handlers.SubscriptionHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupSubscriptionRoutes configures subscription routes.
func SetupSubscriptionRoutes(api *gin.RouterGroup, cfg *SubscriptionRouteConfig) {
	subs := api.Group("/subscriptions")
	{
		subs.POST("", cfg.SubscriptionHandler.CreateSubscription)
		subs.GET("", cfg.SubscriptionHandler.ListSubscriptions)
		subs.GET("/:id", cfg.SubscriptionHandler.GetSubscription)
		subs.POST("/:id/renew", cfg.SubscriptionHandler.RenewSubscription)
		subs.POST("/:id/cancel", cfg.SubscriptionHandler.CancelSubscription)

		subs.PATCH("/:id", cfg.PermissionMiddleware.RequireAdmin(), cfg.SubscriptionHandler.UpdateSubscription)
		subs.DELETE("/:id", cfg.PermissionMiddleware.RequireAdmin(), cfg.SubscriptionHandler.DeleteSubscription)
	}
}
