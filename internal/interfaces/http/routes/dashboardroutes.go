package routes

import (
	"github.com/gin-gonic/gin"

	"f3manager/internal/interfaces/http/handlers"
)

// DashboardRouteConfig holds dependencies for dashboard and report routes.
type DashboardRouteConfig struct {
	DashboardHandler *handlers.DashboardHandler
	ReportHandler    *handlers.ReportHandler
}

// SetupDashboardRoutes configures the read-only dashboard and report routes.
func SetupDashboardRoutes(api *gin.RouterGroup, cfg *DashboardRouteConfig) {
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/summary", cfg.DashboardHandler.GetSummary)
		dashboard.GET("/metrics", cfg.DashboardHandler.GetMetrics)
		dashboard.GET("/payment-metrics", cfg.DashboardHandler.GetPaymentMetrics)
		dashboard.GET("/expiring", cfg.DashboardHandler.GetExpiring)
		dashboard.GET("/recent-check-ins", cfg.DashboardHandler.GetRecentCheckIns)
		dashboard.GET("/recent-payments", cfg.DashboardHandler.GetRecentPayments)
		dashboard.GET("/weekly-attendance", cfg.DashboardHandler.GetWeeklyAttendance)
		dashboard.GET("/weekly-income", cfg.DashboardHandler.GetWeeklyIncome)
		dashboard.GET("/plan-metrics", cfg.DashboardHandler.GetPlanMetrics)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/summary", cfg.ReportHandler.GetSummary)
		reports.GET("/retention", cfg.ReportHandler.GetRetention)
		reports.GET("/monthly-comparison", cfg.ReportHandler.GetMonthlyComparison)
	}
}
