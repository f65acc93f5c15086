package usecases

import (
	"context"

	"f3manager/internal/application/subscription/dto"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type UpdateSubscriptionCommand struct {
	SubscriptionID uint
	Notes          string
	Actor          authorization.Actor
}

type UpdateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	gate             authorization.Gate
	clock            biztime.Clock
	logger           logger.Interface
}

func NewUpdateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	gate authorization.Gate,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		gate:             gate,
		clock:            clock,
		logger:           logger,
	}
}

// Execute replaces the notes. Dates, plan and amounts are not editable.
func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if err := authorization.RequireAdminister(uc.gate, cmd.Actor, "update subscription"); err != nil {
		return nil, err
	}

	sub, err := loadSubscription(ctx, uc.subscriptionRepo, cmd.SubscriptionID)
	if err != nil {
		return nil, err
	}

	sub.SetNotes(utils.SanitizeText(cmd.Notes), uc.clock.Now())
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription notes", "error", err, "subscription_id", sub.ID())
		return nil, err
	}

	uc.logger.Infow("subscription notes updated", "subscription_id", sub.ID(), "staff_id", cmd.Actor.StaffID)
	return dto.ToSubscriptionDTO(sub, nil, nil, uc.clock.Today()), nil
}
