package handlers

import (
	"context"

	subdto "f3manager/internal/application/subscription/dto"
	subUsecases "f3manager/internal/application/subscription/usecases"
	"f3manager/internal/shared/authorization"
)

// Use case interfaces for SubscriptionHandler

type createSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subUsecases.CreateSubscriptionCommand) (*subUsecases.CreateSubscriptionResult, error)
}

type renewSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subUsecases.RenewSubscriptionCommand) (*subUsecases.RenewSubscriptionResult, error)
}

type getSubscriptionUseCase interface {
	Execute(ctx context.Context, subscriptionID uint) (*subdto.SubscriptionDTO, error)
}

type listSubscriptionsUseCase interface {
	Execute(ctx context.Context, query subUsecases.ListSubscriptionsQuery) (*subUsecases.ListSubscriptionsResult, error)
}

type cancelSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subUsecases.CancelSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type updateSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subUsecases.UpdateSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type deleteSubscriptionUseCase interface {
	Execute(ctx context.Context, subscriptionID uint, actor authorization.Actor) error
}
