package usecases

import (
	"context"
	"fmt"

	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type UpdatePlanCommand struct {
	PlanID       uint
	Name         *string
	Description  *string
	Price        *sharedvo.Money
	DurationDays *int
	Active       *bool
	Actor        authorization.Actor
}

type UpdatePlanUseCase struct {
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.Repository
	txManager        db.Transactor
	gate             authorization.Gate
	clock            biztime.Clock
	logger           logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.Repository,
	txManager db.Transactor,
	gate authorization.Gate,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		gate:             gate,
		clock:            clock,
		logger:           logger,
	}
}

// Execute patches a plan. Price and duration are frozen once any
// subscription was sold with the plan.
func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*subscription.Plan, error) {
	if err := authorization.RequireAdminister(uc.gate, cmd.Actor, "update plan"); err != nil {
		return nil, err
	}

	patch := subscription.PlanPatch{
		Name:         cmd.Name,
		Description:  utils.SanitizeOptional(cmd.Description),
		Price:        cmd.Price,
		DurationDays: cmd.DurationDays,
		Active:       cmd.Active,
	}

	var plan *subscription.Plan
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		plan, err = loadPlan(ctx, uc.planRepo, cmd.PlanID)
		if err != nil {
			return err
		}

		if patch.ChangesTerms(plan) {
			count, err := uc.subscriptionRepo.CountByPlan(ctx, plan.ID())
			if err != nil {
				return fmt.Errorf("failed to count plan subscriptions: %w", err)
			}
			if count > 0 {
				return errors.NewPreconditionFailedError(
					"price and duration cannot change once subscriptions use the plan",
					fmt.Sprintf("plan_id=%d subscriptions=%d", plan.ID(), count),
				)
			}
		}

		if err := plan.ApplyPatch(patch, uc.clock.Now()); err != nil {
			return errors.NewValidationError(err.Error())
		}
		return uc.planRepo.Update(ctx, plan)
	})
	if err != nil {
		uc.logger.Warnw("failed to update plan", "error", err, "plan_id", cmd.PlanID)
		return nil, err
	}

	uc.logger.Infow("plan updated", "plan_id", plan.ID(), "staff_id", cmd.Actor.StaffID)
	return plan, nil
}
