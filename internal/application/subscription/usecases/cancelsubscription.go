package usecases

import (
	"context"

	"f3manager/internal/application/subscription/dto"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/infrastructure/metrics"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionID uint
	Actor          authorization.Actor
}

type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	memberRepo       member.Repository
	observer         ExpiryObserver
	txManager        db.Transactor
	gate             authorization.Gate
	clock            biztime.Clock
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	memberRepo member.Repository,
	observer ExpiryObserver,
	txManager db.Transactor,
	gate authorization.Gate,
	clock biztime.Clock,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		memberRepo:       memberRepo,
		observer:         observer,
		txManager:        txManager,
		gate:             gate,
		clock:            clock,
		logger:           logger,
	}
}

// Execute cancels an active subscription. Its payments stay on record.
func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if err := authorization.RequireOperate(uc.gate, cmd.Actor, "cancel subscription"); err != nil {
		return nil, err
	}

	var sub *subscription.Subscription
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if sub, err = loadSubscription(ctx, uc.subscriptionRepo, cmd.SubscriptionID); err != nil {
			return err
		}
		if _, err := uc.memberRepo.LockByID(ctx, sub.MemberID()); err != nil {
			return err
		}
		if err := uc.observer.Observe(ctx, sub); err != nil {
			return err
		}

		if err := sub.Cancel(uc.clock.Now()); err != nil {
			return errors.NewPreconditionFailedError(err.Error())
		}
		return uc.subscriptionRepo.Update(ctx, sub)
	})
	if err != nil {
		uc.logger.Warnw("failed to cancel subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, err
	}

	metrics.RecordCancellation()
	uc.logger.Infow("subscription cancelled",
		"subscription_id", sub.ID(),
		"member_id", sub.MemberID(),
		"staff_id", cmd.Actor.StaffID,
	)
	return dto.ToSubscriptionDTO(sub, nil, nil, uc.clock.Today()), nil
}
