package handlers

import (
	"context"

	subUsecases "f3manager/internal/application/subscription/usecases"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/authorization"
)

// Use case interfaces for PlanHandler

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd subUsecases.CreatePlanCommand) (*subscription.Plan, error)
}

type updatePlanUseCase interface {
	Execute(ctx context.Context, cmd subUsecases.UpdatePlanCommand) (*subscription.Plan, error)
}

type getPlanUseCase interface {
	Execute(ctx context.Context, planID uint) (*subscription.Plan, error)
}

type listPlansUseCase interface {
	Execute(ctx context.Context, query subUsecases.ListPlansQuery) (*subUsecases.ListPlansResult, error)
}

type deactivatePlanUseCase interface {
	Execute(ctx context.Context, planID uint, actor authorization.Actor) error
}

type deletePlanUseCase interface {
	Execute(ctx context.Context, planID uint, actor authorization.Actor) error
}
