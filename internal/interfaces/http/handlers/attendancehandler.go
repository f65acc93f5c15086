package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	attendancedto "f3manager/internal/application/attendance/dto"
	attendanceUsecases "f3manager/internal/application/attendance/usecases"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type AttendanceHandler struct {
	checkInUC    checkInUseCase
	checkOutUC   checkOutUseCase
	getUC        getAttendanceUseCase
	listUC       listAttendanceUseCase
	presentUC    currentlyPresentUseCase
	dailyStatsUC dailyStatsUseCase
	deleteUC     deleteAttendanceUseCase
	logger       logger.Interface
}

func NewAttendanceHandler(
	checkInUC checkInUseCase,
	checkOutUC checkOutUseCase,
	getUC getAttendanceUseCase,
	listUC listAttendanceUseCase,
	presentUC currentlyPresentUseCase,
	dailyStatsUC dailyStatsUseCase,
	deleteUC deleteAttendanceUseCase,
	logger logger.Interface,
) *AttendanceHandler {
	return &AttendanceHandler{
		checkInUC:    checkInUC,
		checkOutUC:   checkOutUC,
		getUC:        getUC,
		listUC:       listUC,
		presentUC:    presentUC,
		dailyStatsUC: dailyStatsUC,
		deleteUC:     deleteUC,
		logger:       logger,
	}
}

type CheckInRequest struct {
	MemberID uint   `json:"member_id" binding:"required"`
	Notes    string `json:"notes" binding:"max=500"`
}

type CheckOutRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for check-in", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	record, err := h.checkInUC.Execute(c.Request.Context(), attendanceUsecases.CheckInCommand{
		MemberID: req.MemberID,
		Notes:    req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, attendancedto.ToAttendanceDTO(record, nil), "Check-in registered")
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	attendanceID, err := utils.ParseIDParam(c, "id", "attendance")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CheckOutRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	record, err := h.checkOutUC.Execute(c.Request.Context(), attendanceUsecases.CheckOutCommand{
		AttendanceID: attendanceID,
		Notes:        req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Check-out registered", attendancedto.ToAttendanceDTO(record, nil))
}

func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	attendanceID, err := utils.ParseIDParam(c, "id", "attendance")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	record, err := h.getUC.Execute(c.Request.Context(), attendanceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", record)
}

// ListAttendance filters by member_id, a from/to date range and open_only.
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	query := attendanceUsecases.ListAttendanceQuery{
		OpenOnly: utils.ParseBoolQuery(c, "open_only", false),
	}

	var err error
	if query.MemberID, err = utils.ParseOptionalUintQuery(c, "member_id"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if query.From, err = utils.ParseOptionalDateQuery(c, "from"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if query.To, err = utils.ParseOptionalDateQuery(c, "to"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)
	query.Skip, query.Limit = p.Skip, p.Limit

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Records, result.Total, p)
}

func (h *AttendanceHandler) ListCurrentlyPresent(c *gin.Context) {
	records, err := h.presentUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", records)
}

// GetDailyStats reports on ?date=YYYY-MM-DD, today by default.
func (h *AttendanceHandler) GetDailyStats(c *gin.Context) {
	date, err := utils.ParseOptionalDateQuery(c, "date")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	stats, err := h.dailyStatsUC.Execute(c.Request.Context(), date)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	attendanceID, err := utils.ParseIDParam(c, "id", "attendance")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), attendanceID, actor); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
