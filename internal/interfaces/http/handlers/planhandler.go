package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	subdto "f3manager/internal/application/subscription/dto"
	subUsecases "f3manager/internal/application/subscription/usecases"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC     createPlanUseCase
	updatePlanUC     updatePlanUseCase
	getPlanUC        getPlanUseCase
	listPlansUC      listPlansUseCase
	deactivatePlanUC deactivatePlanUseCase
	deletePlanUC     deletePlanUseCase
	logger           logger.Interface
}

func NewPlanHandler(
	createPlanUC createPlanUseCase,
	updatePlanUC updatePlanUseCase,
	getPlanUC getPlanUseCase,
	listPlansUC listPlansUseCase,
	deactivatePlanUC deactivatePlanUseCase,
	deletePlanUC deletePlanUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:     createPlanUC,
		updatePlanUC:     updatePlanUC,
		getPlanUC:        getPlanUC,
		listPlansUC:      listPlansUC,
		deactivatePlanUC: deactivatePlanUC,
		deletePlanUC:     deletePlanUC,
		logger:           logger,
	}
}

// CreatePlanRequest accepts price as a JSON number or string, e.g. 550 or "550.00".
// A duration of 0 days makes the plan permanent.
type CreatePlanRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=50"`
	Description  string           `json:"description" binding:"max=500"`
	Price        *decimal.Decimal `json:"price" binding:"required"`
	DurationDays *int             `json:"duration_days" binding:"required,gte=0"`
}

type UpdatePlanRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=50"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	Price        *decimal.Decimal `json:"price"`
	DurationDays *int             `json:"duration_days" binding:"omitempty,gte=0"`
	IsActive     *bool            `json:"is_active"`
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	price, err := parseMoney("price", req.Price)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	plan, err := h.createPlanUC.Execute(c.Request.Context(), subUsecases.CreatePlanCommand{
		Name:         req.Name,
		Description:  req.Description,
		Price:        *price,
		DurationDays: *req.DurationDays,
		Actor:        actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, subdto.ToPlanDTO(plan), "Plan created successfully")
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "plan_id", planID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	price, err := parseMoney("price", req.Price)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	plan, err := h.updatePlanUC.Execute(c.Request.Context(), subUsecases.UpdatePlanCommand{
		PlanID:       planID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        price,
		DurationDays: req.DurationDays,
		Active:       req.IsActive,
		Actor:        actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", subdto.ToPlanDTO(plan))
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	plan, err := h.getPlanUC.Execute(c.Request.Context(), planID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToPlanDTO(plan))
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listPlansUC.Execute(c.Request.Context(), subUsecases.ListPlansQuery{
		ActiveOnly: utils.ParseBoolQuery(c, "active_only", false),
		Skip:       p.Skip,
		Limit:      p.Limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, subdto.ToPlanDTOList(result.Plans), result.Total, p)
}

// DeactivatePlan hides the plan from new sales. Existing subscriptions keep it.
func (h *PlanHandler) DeactivatePlan(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deactivatePlanUC.Execute(c.Request.Context(), planID, actor); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan deactivated successfully", nil)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	actor, err := utils.MustGetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deletePlanUC.Execute(c.Request.Context(), planID, actor); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
