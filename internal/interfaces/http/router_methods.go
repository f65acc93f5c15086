package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"f3manager/internal/interfaces/http/middleware"
	"f3manager/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	cfg := r.cfg
	h := r.hdlrs

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	if cfg.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
		r.engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	r.engine.GET("/health", h.healthHandler.HealthCheck)
	r.engine.GET("/version", h.healthHandler.Version)

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:          h.authHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		LoginRateLimiter:     r.loginRateLimiter,
	})

	api := r.engine.Group("")
	api.Use(r.authMiddleware.RequireAuth(), r.apiRateLimiter.Limit())

	routes.SetupMemberRoutes(api, &routes.MemberRouteConfig{
		MemberHandler:        h.memberHandler,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupPlanRoutes(api, &routes.PlanRouteConfig{
		PlanHandler:          h.planHandler,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupSubscriptionRoutes(api, &routes.SubscriptionRouteConfig{
		SubscriptionHandler:  h.subscriptionHandler,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupPaymentRoutes(api, &routes.PaymentRouteConfig{
		PaymentHandler:       h.paymentHandler,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupAttendanceRoutes(api, &routes.AttendanceRouteConfig{
		AttendanceHandler:    h.attendanceHandler,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupDashboardRoutes(api, &routes.DashboardRouteConfig{
		DashboardHandler: h.dashboardHandler,
		ReportHandler:    h.reportHandler,
	})
}
