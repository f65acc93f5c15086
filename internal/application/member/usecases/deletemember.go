package usecases

import (
	"context"

	"f3manager/internal/domain/member"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/logger"
)

type DeactivateMemberUseCase struct {
	memberRepo member.Repository
	clock      biztime.Clock
	logger     logger.Interface
}

func NewDeactivateMemberUseCase(memberRepo member.Repository, clock biztime.Clock, logger logger.Interface) *DeactivateMemberUseCase {
	return &DeactivateMemberUseCase{
		memberRepo: memberRepo,
		clock:      clock,
		logger:     logger,
	}
}

// Execute is the regular delete path: the member is kept but marked inactive.
func (uc *DeactivateMemberUseCase) Execute(ctx context.Context, memberID uint) error {
	m, err := loadMember(ctx, uc.memberRepo, memberID)
	if err != nil {
		return err
	}
	if !m.IsActive() {
		return nil
	}

	m.Deactivate(uc.clock.Now())
	if err := uc.memberRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to deactivate member", "error", err, "member_id", memberID)
		return err
	}

	uc.logger.Infow("member deactivated", "member_id", memberID)
	return nil
}

type PurgeMemberUseCase struct {
	memberRepo member.Repository
	txManager  db.Transactor
	gate       authorization.Gate
	logger     logger.Interface
}

func NewPurgeMemberUseCase(
	memberRepo member.Repository,
	txManager db.Transactor,
	gate authorization.Gate,
	logger logger.Interface,
) *PurgeMemberUseCase {
	return &PurgeMemberUseCase{
		memberRepo: memberRepo,
		txManager:  txManager,
		gate:       gate,
		logger:     logger,
	}
}

// Execute erases the member with every subscription, payment and visit.
func (uc *PurgeMemberUseCase) Execute(ctx context.Context, memberID uint, actor authorization.Actor) error {
	if err := authorization.RequireAdminister(uc.gate, actor, "purge member"); err != nil {
		return err
	}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := loadMember(ctx, uc.memberRepo, memberID); err != nil {
			return err
		}
		return uc.memberRepo.Purge(ctx, memberID)
	})
	if err != nil {
		uc.logger.Warnw("failed to purge member", "error", err, "member_id", memberID)
		return err
	}

	uc.logger.Infow("member purged", "member_id", memberID, "staff_id", actor.StaffID)
	return nil
}
