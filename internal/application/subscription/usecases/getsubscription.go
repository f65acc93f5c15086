package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/application/subscription/dto"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	memberRepo       member.Repository
	observer         ExpiryObserver
	clock            biztime.Clock
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	memberRepo member.Repository,
	observer ExpiryObserver,
	clock biztime.Clock,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		memberRepo:       memberRepo,
		observer:         observer,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, subscriptionID uint) (*dto.SubscriptionDTO, error) {
	sub, err := loadSubscription(ctx, uc.subscriptionRepo, subscriptionID)
	if err != nil {
		return nil, err
	}
	if err := uc.observer.Observe(ctx, sub); err != nil {
		return nil, err
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get subscription plan", "error", err, "plan_id", sub.PlanID())
		return nil, fmt.Errorf("failed to get subscription plan: %w", err)
	}
	m, err := uc.memberRepo.GetByID(ctx, sub.MemberID())
	if err != nil {
		uc.logger.Errorw("failed to get subscription member", "error", err, "member_id", sub.MemberID())
		return nil, fmt.Errorf("failed to get subscription member: %w", err)
	}

	uc.logger.Debugw("subscription retrieved", "subscription_id", sub.ID(), "status", sub.Status())
	return dto.ToSubscriptionDTO(sub, plan, m, uc.clock.Today()), nil
}

// ActiveForMember returns the member's subscription covering today, or nil
// when there is none.
func (uc *GetSubscriptionUseCase) ActiveForMember(ctx context.Context, memberID uint) (*dto.SubscriptionDTO, error) {
	m, err := uc.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError(member.ErrMemberNotFound.Error(), fmt.Sprintf("member_id=%d", memberID))
	}

	today := uc.clock.Today()
	sub, err := uc.subscriptionRepo.FindCurrentForMember(ctx, memberID, today, 0)
	if err != nil {
		uc.logger.Errorw("failed to find current subscription", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("failed to find current subscription: %w", err)
	}
	if sub == nil {
		return nil, nil
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription plan: %w", err)
	}
	return dto.ToSubscriptionDTO(sub, plan, m, today), nil
}
