package routes

import (
	"github.com/gin-gonic/gin"

	"f3manager/internal/interfaces/http/handlers"
	"f3manager/internal/interfaces/http/middleware"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler       *handlers.PaymentHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupPaymentRoutes configures payment routes.
func SetupPaymentRoutes(api *gin.RouterGroup, cfg *PaymentRouteConfig) {
	payments := api.Group("/payments")
	{
		payments.POST("", cfg.PaymentHandler.RecordPayment)
		payments.GET("", cfg.PaymentHandler.ListPayments)
		// Specific named endpoints must come before /:id.
		payments.GET("/summary", cfg.PaymentHandler.GetSummary)
		payments.GET("/:id", cfg.PaymentHandler.GetPayment)
		payments.PATCH("/:id", cfg.PaymentHandler.UpdatePayment)
		payments.DELETE("/:id", cfg.PermissionMiddleware.RequireAdmin(), cfg.PaymentHandler.DeletePayment)
	}
}
