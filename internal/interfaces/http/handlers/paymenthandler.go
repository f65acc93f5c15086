package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	paymentdto "f3manager/internal/application/payment/dto"
	paymentUsecases "f3manager/internal/application/payment/usecases"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type PaymentHandler struct {
	recordUC  recordPaymentUseCase
	getUC     getPaymentUseCase
	listUC    listPaymentsUseCase
	updateUC  updatePaymentUseCase
	deleteUC  deletePaymentUseCase
	summaryUC paymentSummaryUseCase
	logger    logger.Interface
}

func NewPaymentHandler(
	recordUC recordPaymentUseCase,
	getUC getPaymentUseCase,
	listUC listPaymentsUseCase,
	updateUC updatePaymentUseCase,
	deleteUC deletePaymentUseCase,
	summaryUC paymentSummaryUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		recordUC:  recordUC,
		getUC:     getUC,
		listUC:    listUC,
		updateUC:  updateUC,
		deleteUC:  deleteUC,
		summaryUC: summaryUC,
		logger:    logger,
	}
}

type RecordPaymentRequest struct {
	MemberID       uint             `json:"member_id" binding:"required"`
	SubscriptionID uint             `json:"subscription_id" binding:"required"`
	Amount         *decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate    string           `json:"payment_date" binding:"omitempty,civil_date"`
	PaymentMethod  string           `json:"payment_method" binding:"omitempty,payment_method"`
	Reference      string           `json:"reference" binding:"max=100"`
	Notes          string           `json:"notes" binding:"max=1000"`
}

// UpdatePaymentRequest only touches descriptive fields; amount and date are
// fixed once recorded.
type UpdatePaymentRequest struct {
	PaymentMethod *string `json:"payment_method" binding:"omitempty,payment_method"`
	Reference     *string `json:"reference" binding:"omitempty,max=100"`
	Notes         *string `json:"notes" binding:"omitempty,max=1000"`
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record payment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	amount, err := parseMoney("amount", req.Amount)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	paymentDate, err := parseOptionalDate("payment_date", req.PaymentDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.recordUC.Execute(c.Request.Context(), paymentUsecases.RecordPaymentCommand{
		SubscriptionID: req.SubscriptionID,
		MemberID:       req.MemberID,
		Amount:         *amount,
		PaymentDate:    paymentDate,
		Method:         req.PaymentMethod,
		Reference:      req.Reference,
		Notes:          req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, paymentdto.ToPaymentDTO(p), "Payment recorded successfully")
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID, err := utils.ParseIDParam(c, "id", "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), paymentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", paymentdto.ToPaymentDTO(p))
}

// ListPayments filters by member_id, subscription_id, payment_method and a
// from/to payment date range.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	query := paymentUsecases.ListPaymentsQuery{Method: c.Query("payment_method")}

	var err error
	if query.MemberID, err = utils.ParseOptionalUintQuery(c, "member_id"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if query.SubscriptionID, err = utils.ParseOptionalUintQuery(c, "subscription_id"); err != nil {
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

	utils.ListSuccessResponse(c, paymentdto.ToPaymentDTOList(result.Payments), result.Total, p)
}

func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	paymentID, err := utils.ParseIDParam(c, "id", "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update payment", "payment_id", paymentID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.updateUC.Execute(c.Request.Context(), paymentUsecases.UpdatePaymentCommand{
		PaymentID: paymentID,
		Method:    req.PaymentMethod,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment updated successfully", paymentdto.ToPaymentDTO(p))
}

// DeletePayment removes the payment and recomputes the subscription balance.
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	paymentID, err := utils.ParseIDParam(c, "id", "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), paymentUsecases.DeletePaymentCommand{
		PaymentID: paymentID,
		Actor:     actor,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PaymentHandler) GetSummary(c *gin.Context) {
	from, err := utils.ParseOptionalDateQuery(c, "from")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	to, err := utils.ParseOptionalDateQuery(c, "to")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	summary, err := h.summaryUC.Execute(c.Request.Context(), paymentUsecases.GetPaymentSummaryQuery{From: from, To: to})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}
