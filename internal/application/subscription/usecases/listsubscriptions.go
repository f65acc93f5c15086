package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/application/subscription/dto"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type ListSubscriptionsQuery struct {
	MemberID   *uint
	PlanID     *uint
	Status     string
	ActiveOnly bool
	Skip       int
	Limit      int
}

type ListSubscriptionsResult struct {
	Subscriptions []*dto.SubscriptionDTO
	Total         int64
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	memberRepo       member.Repository
	observer         ExpiryObserver
	clock            biztime.Clock
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	memberRepo member.Repository,
	observer ExpiryObserver,
	clock biztime.Clock,
	logger logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		memberRepo:       memberRepo,
		observer:         observer,
		clock:            clock,
		logger:           logger,
	}
}

// Execute lists subscriptions newest first. Status filters match the
// effective status, and lapsed rows in the page are expired before they are
// returned.
func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, query ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	today := uc.clock.Today()
	filter := subscription.ListFilter{
		MemberID:    query.MemberID,
		PlanID:      query.PlanID,
		CurrentOnly: query.ActiveOnly,
		Today:       today,
		Skip:        query.Skip,
		Limit:       query.Limit,
	}
	if query.Status != "" {
		status := vo.SubscriptionStatus(query.Status)
		if !vo.ValidStatuses[status] {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid subscription status: %s", query.Status))
		}
		filter.Status = &status
	}

	subs, total, err := uc.subscriptionRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if err := uc.observer.Observe(ctx, subs...); err != nil {
		return nil, err
	}

	planIDs := make([]uint, 0, len(subs))
	memberIDs := make([]uint, 0, len(subs))
	for _, s := range subs {
		planIDs = append(planIDs, s.PlanID())
		memberIDs = append(memberIDs, s.MemberID())
	}
	plans, err := uc.planRepo.GetByIDs(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	members, err := uc.memberRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	return &ListSubscriptionsResult{
		Subscriptions: dto.ToSubscriptionDTOList(subs, plans, members, today),
		Total:         total,
	}, nil
}
