package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	memberdto "f3manager/internal/application/member/dto"
	memberUsecases "f3manager/internal/application/member/usecases"
	paymentdto "f3manager/internal/application/payment/dto"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type MemberHandler struct {
	createMemberUC     createMemberUseCase
	getMemberUC        getMemberUseCase
	listMembersUC      listMembersUseCase
	updateMemberUC     updateMemberUseCase
	deactivateMemberUC deactivateMemberUseCase
	purgeMemberUC      purgeMemberUseCase
	activeSubUC        activeSubscriptionUseCase
	paymentsUC         memberPaymentsUseCase
	attendanceUC       memberAttendanceUseCase
	clock              biztime.Clock
	logger             logger.Interface
}

func NewMemberHandler(
	createMemberUC createMemberUseCase,
	getMemberUC getMemberUseCase,
	listMembersUC listMembersUseCase,
	updateMemberUC updateMemberUseCase,
	deactivateMemberUC deactivateMemberUseCase,
	purgeMemberUC purgeMemberUseCase,
	activeSubUC activeSubscriptionUseCase,
	paymentsUC memberPaymentsUseCase,
	attendanceUC memberAttendanceUseCase,
	clock biztime.Clock,
	logger logger.Interface,
) *MemberHandler {
	return &MemberHandler{
		createMemberUC:     createMemberUC,
		getMemberUC:        getMemberUC,
		listMembersUC:      listMembersUC,
		updateMemberUC:     updateMemberUC,
		deactivateMemberUC: deactivateMemberUC,
		purgeMemberUC:      purgeMemberUC,
		activeSubUC:        activeSubUC,
		paymentsUC:         paymentsUC,
		attendanceUC:       attendanceUC,
		clock:              clock,
		logger:             logger,
	}
}

type CreateMemberRequest struct {
	FirstName        string `json:"first_name" binding:"required,max=100"`
	LastNamePaternal string `json:"last_name_paternal" binding:"required,max=100"`
	LastNameMaternal string `json:"last_name_maternal" binding:"max=100"`
	Phone            string `json:"phone" binding:"max=20"`
	Email            string `json:"email" binding:"omitempty,email,max=255"`
	BirthDate        string `json:"birth_date" binding:"omitempty,civil_date"`
	EmergencyContact string `json:"emergency_contact" binding:"max=200"`
	EmergencyPhone   string `json:"emergency_phone" binding:"max=20"`
	PhotoURL         string `json:"photo_url" binding:"omitempty,url,max=500"`
}

type UpdateMemberRequest struct {
	FirstName        *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastNamePaternal *string `json:"last_name_paternal" binding:"omitempty,min=1,max=100"`
	LastNameMaternal *string `json:"last_name_maternal" binding:"omitempty,max=100"`
	Phone            *string `json:"phone" binding:"omitempty,max=20"`
	Email            *string `json:"email" binding:"omitempty,max=255"`
	BirthDate        *string `json:"birth_date" binding:"omitempty,civil_date"`
	EmergencyContact *string `json:"emergency_contact" binding:"omitempty,max=200"`
	EmergencyPhone   *string `json:"emergency_phone" binding:"omitempty,max=20"`
	PhotoURL         *string `json:"photo_url" binding:"omitempty,max=500"`
	IsActive         *bool   `json:"is_active"`
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create member", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	birthDate, err := parseOptionalDate("birth_date", req.BirthDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	m, err := h.createMemberUC.Execute(c.Request.Context(), memberUsecases.ProfileInput{
		FirstName:        req.FirstName,
		LastNamePaternal: req.LastNamePaternal,
		LastNameMaternal: req.LastNameMaternal,
		Phone:            req.Phone,
		Email:            req.Email,
		BirthDate:        birthDate,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		PhotoURL:         req.PhotoURL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, memberdto.ToMemberDTO(m, h.clock.Today()), "Member registered successfully")
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getMemberUC.Detail(c.Request.Context(), memberID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMembers supports search over name, email and phone plus active_only.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listMembersUC.Execute(c.Request.Context(), memberUsecases.ListMembersQuery{
		Search:     c.Query("search"),
		ActiveOnly: utils.ParseBoolQuery(c, "active_only", false),
		Skip:       p.Skip,
		Limit:      p.Limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, memberdto.ToMemberDTOList(result.Members, h.clock.Today()), result.Total, p)
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update member", "member_id", memberID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := memberUsecases.UpdateMemberCommand{
		MemberID:         memberID,
		FirstName:        req.FirstName,
		LastNamePaternal: req.LastNamePaternal,
		LastNameMaternal: req.LastNameMaternal,
		Phone:            req.Phone,
		Email:            req.Email,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		PhotoURL:         req.PhotoURL,
		Active:           req.IsActive,
	}
	if req.BirthDate != nil {
		if cmd.BirthDate, err = parseOptionalDate("birth_date", *req.BirthDate); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	m, err := h.updateMemberUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member updated successfully", memberdto.ToMemberDTO(m, h.clock.Today()))
}

// DeleteMember deactivates the member. Rows are kept for history.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deactivateMemberUC.Execute(c.Request.Context(), memberID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member deactivated successfully", nil)
}

// PurgeMember hard deletes a member with all attendance, payments and
// subscriptions.
func (h *MemberHandler) PurgeMember(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.purgeMemberUC.Execute(c.Request.Context(), memberID, actor); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetActiveSubscription returns the subscription covering today, or null.
func (h *MemberHandler) GetActiveSubscription(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.activeSubUC.ActiveForMember(c.Request.Context(), memberID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func (h *MemberHandler) ListMemberPayments(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payments, err := h.paymentsUC.MemberHistory(c.Request.Context(), memberID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", paymentdto.ToPaymentDTOList(payments))
}

// ListMemberAttendance returns visits over the last days days (config default).
func (h *MemberHandler) ListMemberAttendance(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	days := utils.ParseIntQuery(c, "days", 0, 0, 365)
	records, err := h.attendanceUC.History(c.Request.Context(), memberID, days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", records)
}
