package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/application/member/dto"
	subdto "f3manager/internal/application/subscription/dto"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type GetMemberUseCase struct {
	memberRepo       member.Repository
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	clock            biztime.Clock
	logger           logger.Interface
}

func NewGetMemberUseCase(
	memberRepo member.Repository,
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	clock biztime.Clock,
	logger logger.Interface,
) *GetMemberUseCase {
	return &GetMemberUseCase{
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *GetMemberUseCase) Execute(ctx context.Context, memberID uint) (*member.Member, error) {
	return loadMember(ctx, uc.memberRepo, memberID)
}

// Detail returns the member with the subscription covering today. Only
// current subscriptions are read, so no lazy expiry applies.
func (uc *GetMemberUseCase) Detail(ctx context.Context, memberID uint) (*dto.MemberDetailDTO, error) {
	m, err := loadMember(ctx, uc.memberRepo, memberID)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	detail := &dto.MemberDetailDTO{MemberDTO: dto.ToMemberDTO(m, today)}

	sub, err := uc.subscriptionRepo.FindCurrentForMember(ctx, memberID, today, 0)
	if err != nil {
		uc.logger.Errorw("failed to find current subscription", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("failed to find current subscription: %w", err)
	}
	if sub != nil {
		plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
		if err != nil {
			return nil, fmt.Errorf("failed to get subscription plan: %w", err)
		}
		detail.ActiveSubscription = subdto.ToSubscriptionDTO(sub, plan, m, today)
	}
	return detail, nil
}

func loadMember(ctx context.Context, repo member.Repository, memberID uint) (*member.Member, error) {
	m, err := repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError(member.ErrMemberNotFound.Error(), fmt.Sprintf("member_id=%d", memberID))
	}
	return m, nil
}
