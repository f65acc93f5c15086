package routes

import (
	"github.com/gin-gonic/gin"

	"f3manager/internal/interfaces/http/handlers"
	"f3manager/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for auth and staff routes.
type AuthRouteConfig struct {
	AuthHandler          *handlers.AuthHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	LoginRateLimiter     *middleware.RateLimiter
}

// SetupAuthRoutes configures login, session and staff account routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/login", cfg.LoginRateLimiter.Limit(), cfg.AuthHandler.Login)
		auth.POST("/logout", cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)
	}

	staff := engine.Group("/staff")
	staff.Use(cfg.AuthMiddleware.RequireAuth(), cfg.PermissionMiddleware.RequireAdmin())
	{
		staff.POST("", cfg.AuthHandler.RegisterStaff)
		staff.GET("", cfg.AuthHandler.ListStaff)
	}
}
