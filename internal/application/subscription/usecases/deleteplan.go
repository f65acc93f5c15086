package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type DeactivatePlanUseCase struct {
	planRepo subscription.PlanRepository
	gate     authorization.Gate
	clock    biztime.Clock
	logger   logger.Interface
}

func NewDeactivatePlanUseCase(
	planRepo subscription.PlanRepository,
	gate authorization.Gate,
	clock biztime.Clock,
	logger logger.Interface,
) *DeactivatePlanUseCase {
	return &DeactivatePlanUseCase{
		planRepo: planRepo,
		gate:     gate,
		clock:    clock,
		logger:   logger,
	}
}

// Execute hides the plan from new sales. Existing subscriptions are untouched.
func (uc *DeactivatePlanUseCase) Execute(ctx context.Context, planID uint, actor authorization.Actor) error {
	if err := authorization.RequireAdminister(uc.gate, actor, "deactivate plan"); err != nil {
		return err
	}

	plan, err := loadPlan(ctx, uc.planRepo, planID)
	if err != nil {
		return err
	}

	plan.Deactivate(uc.clock.Now())
	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to deactivate plan", "error", err, "plan_id", planID)
		return err
	}

	uc.logger.Infow("plan deactivated", "plan_id", planID, "staff_id", actor.StaffID)
	return nil
}

type DeletePlanUseCase struct {
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.Repository
	txManager        db.Transactor
	gate             authorization.Gate
	logger           logger.Interface
}

func NewDeletePlanUseCase(
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.Repository,
	txManager db.Transactor,
	gate authorization.Gate,
	logger logger.Interface,
) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		gate:             gate,
		logger:           logger,
	}
}

// Execute removes a plan no subscription references.
func (uc *DeletePlanUseCase) Execute(ctx context.Context, planID uint, actor authorization.Actor) error {
	if err := authorization.RequireAdminister(uc.gate, actor, "delete plan"); err != nil {
		return err
	}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := loadPlan(ctx, uc.planRepo, planID); err != nil {
			return err
		}

		count, err := uc.subscriptionRepo.CountByPlan(ctx, planID)
		if err != nil {
			return fmt.Errorf("failed to count plan subscriptions: %w", err)
		}
		if count > 0 {
			return errors.NewConflictError("plan is referenced by subscriptions",
				fmt.Sprintf("plan_id=%d subscriptions=%d", planID, count))
		}

		return uc.planRepo.Delete(ctx, planID)
	})
	if err != nil {
		uc.logger.Warnw("failed to delete plan", "error", err, "plan_id", planID)
		return err
	}

	uc.logger.Infow("plan deleted", "plan_id", planID, "staff_id", actor.StaffID)
	return nil
}
