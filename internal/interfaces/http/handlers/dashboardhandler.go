package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardUsecases "f3manager/internal/application/dashboard/usecases"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

// DashboardHandler serves the read-only front-desk dashboard.
type DashboardHandler struct {
	dashboardUC dashboardUseCase
	logger      logger.Interface
}

func NewDashboardHandler(dashboardUC dashboardUseCase, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	days, err := utils.ParseOptionalIntQuery(c, "expiring_days")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	limit, err := utils.ParseOptionalIntQuery(c, "limit")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	summary, err := h.dashboardUC.Summary(c.Request.Context(), dashboardUsecases.SummaryQuery{
		ExpiringDays: days,
		RecentLimit:  limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.dashboardUC.Metrics(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", metrics)
}

func (h *DashboardHandler) GetPaymentMetrics(c *gin.Context) {
	metrics, err := h.dashboardUC.PaymentMetrics(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", metrics)
}

func (h *DashboardHandler) GetExpiring(c *gin.Context) {
	days, err := utils.ParseOptionalIntQuery(c, "days")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	expiring, err := h.dashboardUC.Expiring(c.Request.Context(), days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", expiring)
}

func (h *DashboardHandler) GetRecentCheckIns(c *gin.Context) {
	limit, err := utils.ParseOptionalIntQuery(c, "limit")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	feed, err := h.dashboardUC.RecentCheckIns(c.Request.Context(), limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", feed)
}

func (h *DashboardHandler) GetRecentPayments(c *gin.Context) {
	limit, err := utils.ParseOptionalIntQuery(c, "limit")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	feed, err := h.dashboardUC.RecentPayments(c.Request.Context(), limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", feed)
}

func (h *DashboardHandler) GetWeeklyAttendance(c *gin.Context) {
	series, err := h.dashboardUC.WeeklyAttendance(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", series)
}

func (h *DashboardHandler) GetWeeklyIncome(c *gin.Context) {
	series, err := h.dashboardUC.WeeklyIncome(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", series)
}

func (h *DashboardHandler) GetPlanMetrics(c *gin.Context) {
	plans, err := h.dashboardUC.PlanMetrics(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", plans)
}
