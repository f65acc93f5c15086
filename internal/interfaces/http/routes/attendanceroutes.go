package routes

import (
	"github.com/gin-gonic/gin"

	"f3manager/internal/interfaces/http/handlers"
	"f3manager/internal/interfaces/http/middleware"
)

// AttendanceRouteConfig holds dependencies for attendance routes.
type AttendanceRouteConfig struct {
	AttendanceHandler    *handlers.AttendanceHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAttendanceRoutes configures check-in/check-out and attendance queries.
func SetupAttendanceRoutes(api *gin.RouterGroup, cfg *AttendanceRouteConfig) {
	attendance := api.Group("/attendance")
	{
		attendance.POST("/check-in", cfg.AttendanceHandler.CheckIn)
		attendance.GET("", cfg.AttendanceHandler.ListAttendance)
		attendance.GET("/current", cfg.AttendanceHandler.ListCurrentlyPresent)
		attendance.GET("/stats/daily", cfg.AttendanceHandler.GetDailyStats)
		attendance.GET("/:id", cfg.AttendanceHandler.GetAttendance)
		attendance.POST("/:id/check-out", cfg.AttendanceHandler.CheckOut)
		attendance.DELETE("/:id", cfg.PermissionMiddleware.RequireAdmin(), cfg.AttendanceHandler.DeleteAttendance)
	}
}
