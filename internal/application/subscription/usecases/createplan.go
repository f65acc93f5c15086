package usecases

import (
	"context"

	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type CreatePlanCommand struct {
	Name         string
	Description  string
	Price        sharedvo.Money
	DurationDays int
	Actor        authorization.Actor
}

type CreatePlanUseCase struct {
	planRepo subscription.PlanRepository
	gate     authorization.Gate
	clock    biztime.Clock
	logger   logger.Interface
}

func NewCreatePlanUseCase(
	planRepo subscription.PlanRepository,
	gate authorization.Gate,
	clock biztime.Clock,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		gate:     gate,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*subscription.Plan, error) {
	if err := authorization.RequireAdminister(uc.gate, cmd.Actor, "create plan"); err != nil {
		return nil, err
	}

	plan, err := subscription.NewPlan(cmd.Name, utils.SanitizeText(cmd.Description), cmd.Price, cmd.DurationDays, uc.clock.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		uc.logger.Warnw("failed to create plan", "error", err, "name", cmd.Name)
		return nil, err
	}

	uc.logger.Infow("plan created",
		"plan_id", plan.ID(),
		"name", plan.Name(),
		"price", plan.Price().String(),
		"duration_days", plan.DurationDays(),
		"staff_id", cmd.Actor.StaffID,
	)
	return plan, nil
}
