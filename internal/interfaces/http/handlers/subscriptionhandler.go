package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	paymentdto "f3manager/internal/application/payment/dto"
	subdto "f3manager/internal/application/subscription/dto"
	subUsecases "f3manager/internal/application/subscription/usecases"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC createSubscriptionUseCase
	renewUC  renewSubscriptionUseCase
	getUC    getSubscriptionUseCase
	listUC   listSubscriptionsUseCase
	cancelUC cancelSubscriptionUseCase
	updateUC updateSubscriptionUseCase
	deleteUC deleteSubscriptionUseCase
	logger   logger.Interface
}

func NewSubscriptionHandler(
	createUC createSubscriptionUseCase,
	renewUC renewSubscriptionUseCase,
	getUC getSubscriptionUseCase,
	listUC listSubscriptionsUseCase,
	cancelUC cancelSubscriptionUseCase,
	updateUC updateSubscriptionUseCase,
	deleteUC deleteSubscriptionUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC: createUC,
		renewUC:  renewUC,
		getUC:    getUC,
		listUC:   listUC,
		cancelUC: cancelUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

// PaymentRequest is the payment taken at the counter when a subscription is
// sold. Omitting amount_paid charges the full plan price; 0 records nothing.
type PaymentRequest struct {
	AmountPaid       *decimal.Decimal `json:"amount_paid"`
	PaymentMethod    string           `json:"payment_method" binding:"omitempty,payment_method"`
	PaymentReference string           `json:"payment_reference" binding:"max=100"`
	PaymentNotes     string           `json:"payment_notes" binding:"max=500"`
}

func (r PaymentRequest) toInfo() (subUsecases.PaymentInfo, error) {
	amount, err := parseMoney("amount_paid", r.AmountPaid)
	if err != nil {
		return subUsecases.PaymentInfo{}, err
	}
	return subUsecases.PaymentInfo{
		AmountPaid: amount,
		Method:     r.PaymentMethod,
		Reference:  r.PaymentReference,
		Notes:      r.PaymentNotes,
	}, nil
}

type CreateSubscriptionRequest struct {
	MemberID  uint   `json:"member_id" binding:"required"`
	PlanID    uint   `json:"plan_id" binding:"required"`
	StartDate string `json:"start_date" binding:"omitempty,civil_date"`
	Notes     string `json:"notes" binding:"max=1000"`
	PaymentRequest
}

type RenewSubscriptionRequest struct {
	PlanID    *uint  `json:"plan_id" binding:"omitempty,gt=0"`
	StartDate string `json:"start_date" binding:"omitempty,civil_date"`
	Notes     string `json:"notes" binding:"max=1000"`
	PaymentRequest
}

type UpdateSubscriptionRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// SubscriptionSaleResponse is returned by create and renew.
type SubscriptionSaleResponse struct {
	Subscription *subdto.SubscriptionDTO `json:"subscription"`
	Previous     *subdto.SubscriptionDTO `json:"previous,omitempty"`
	Payment      *paymentdto.PaymentDTO  `json:"payment"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	startDate, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	info, err := req.toInfo()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), subUsecases.CreateSubscriptionCommand{
		MemberID:  req.MemberID,
		PlanID:    req.PlanID,
		StartDate: startDate,
		Notes:     req.Notes,
		Payment:   info,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, SubscriptionSaleResponse{
		Subscription: result.Subscription,
		Payment:      paymentdto.ToPaymentDTO(result.Payment),
	}, "Subscription created successfully")
}

func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	subscriptionID, err := utils.ParseIDParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RenewSubscriptionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for renew subscription", "subscription_id", subscriptionID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	startDate, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	info, err := req.toInfo()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.renewUC.Execute(c.Request.Context(), subUsecases.RenewSubscriptionCommand{
		SubscriptionID: subscriptionID,
		PlanID:         req.PlanID,
		StartDate:      startDate,
		Notes:          req.Notes,
		Payment:        info,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, SubscriptionSaleResponse{
		Subscription: result.Subscription,
		Previous:     result.Previous,
		Payment:      paymentdto.ToPaymentDTO(result.Payment),
	}, "Subscription renewed successfully")
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	subscriptionID, err := utils.ParseIDParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), subscriptionID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListSubscriptions filters by member_id, plan_id, status and active_only.
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	memberID, err := utils.ParseOptionalUintQuery(c, "member_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	planID, err := utils.ParseOptionalUintQuery(c, "plan_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), subUsecases.ListSubscriptionsQuery{
		MemberID:   memberID,
		PlanID:     planID,
		Status:     c.Query("status"),
		ActiveOnly: utils.ParseBoolQuery(c, "active_only", false),
		Skip:       p.Skip,
		Limit:      p.Limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Subscriptions, result.Total, p)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	subscriptionID, err := utils.ParseIDParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), subUsecases.CancelSubscriptionCommand{
		SubscriptionID: subscriptionID,
		Actor:          actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", result)
}

func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	subscriptionID, err := utils.ParseIDParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), subUsecases.UpdateSubscriptionCommand{
		SubscriptionID: subscriptionID,
		Notes:          req.Notes,
		Actor:          actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription updated successfully", result)
}

func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	subscriptionID, err := utils.ParseIDParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), subscriptionID, actor); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
