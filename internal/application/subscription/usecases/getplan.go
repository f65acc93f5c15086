package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type GetPlanUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, planID uint) (*subscription.Plan, error) {
	return loadPlan(ctx, uc.planRepo, planID)
}

type ListPlansQuery struct {
	ActiveOnly bool
	Skip       int
	Limit      int
}

type ListPlansResult struct {
	Plans []*subscription.Plan
	Total int64
}

type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, query ListPlansQuery) (*ListPlansResult, error) {
	plans, total, err := uc.planRepo.List(ctx, subscription.PlanListFilter{
		ActiveOnly: query.ActiveOnly,
		Skip:       query.Skip,
		Limit:      query.Limit,
	})
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return &ListPlansResult{Plans: plans, Total: total}, nil
}

func loadPlan(ctx context.Context, repo subscription.PlanRepository, planID uint) (*subscription.Plan, error) {
	plan, err := repo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewNotFoundError(subscription.ErrPlanNotFound.Error(), fmt.Sprintf("plan_id=%d", planID))
	}
	return plan, nil
}
