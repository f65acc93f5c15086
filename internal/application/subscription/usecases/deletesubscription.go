package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/payment"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type DeleteSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	paymentRepo      payment.Repository
	attendanceRepo   attendance.Repository
	txManager        db.Transactor
	gate             authorization.Gate
	logger           logger.Interface
}

func NewDeleteSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	paymentRepo payment.Repository,
	attendanceRepo attendance.Repository,
	txManager db.Transactor,
	gate authorization.Gate,
	logger logger.Interface,
) *DeleteSubscriptionUseCase {
	return &DeleteSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		attendanceRepo:   attendanceRepo,
		txManager:        txManager,
		gate:             gate,
		logger:           logger,
	}
}

// Execute hard deletes a subscription without payments. Visits that were
// linked to it keep their rows and lose the link.
func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, subscriptionID uint, actor authorization.Actor) error {
	if err := authorization.RequireAdminister(uc.gate, actor, "delete subscription"); err != nil {
		return err
	}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := loadSubscription(ctx, uc.subscriptionRepo, subscriptionID); err != nil {
			return err
		}

		count, err := uc.paymentRepo.CountForSubscription(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("failed to count subscription payments: %w", err)
		}
		if count > 0 {
			return errors.NewConflictError("subscription has payments",
				fmt.Sprintf("subscription_id=%d payments=%d", subscriptionID, count))
		}

		if err := uc.attendanceRepo.ClearSubscription(ctx, subscriptionID); err != nil {
			return err
		}
		return uc.subscriptionRepo.Delete(ctx, subscriptionID)
	})
	if err != nil {
		uc.logger.Warnw("failed to delete subscription", "error", err, "subscription_id", subscriptionID)
		return err
	}

	uc.logger.Infow("subscription deleted", "subscription_id", subscriptionID, "staff_id", actor.StaffID)
	return nil
}
