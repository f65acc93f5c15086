package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reportUsecases "f3manager/internal/application/report/usecases"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type ReportHandler struct {
	summaryUC    reportSummaryUseCase
	retentionUC  retentionReportUseCase
	comparisonUC monthlyComparisonUseCase
	logger       logger.Interface
}

func NewReportHandler(
	summaryUC reportSummaryUseCase,
	retentionUC retentionReportUseCase,
	comparisonUC monthlyComparisonUseCase,
	logger logger.Interface,
) *ReportHandler {
	return &ReportHandler{
		summaryUC:    summaryUC,
		retentionUC:  retentionUC,
		comparisonUC: comparisonUC,
		logger:       logger,
	}
}

// parsePeriodQuery reads ?period=week|month|year or a start_date/end_date pair.
func parsePeriodQuery(c *gin.Context) (reportUsecases.PeriodQuery, error) {
	query := reportUsecases.PeriodQuery{Period: c.Query("period")}
	var err error
	if query.From, err = utils.ParseOptionalDateQuery(c, "start_date"); err != nil {
		return query, err
	}
	if query.To, err = utils.ParseOptionalDateQuery(c, "end_date"); err != nil {
		return query, err
	}
	return query, nil
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	query, err := parsePeriodQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	report, err := h.summaryUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", report)
}

func (h *ReportHandler) GetRetention(c *gin.Context) {
	query, err := parsePeriodQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	report, err := h.retentionUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", report)
}

func (h *ReportHandler) GetMonthlyComparison(c *gin.Context) {
	report, err := h.comparisonUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", report)
}
