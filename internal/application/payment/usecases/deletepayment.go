package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type DeletePaymentCommand struct {
	PaymentID uint
	Actor     authorization.Actor
}

type DeletePaymentUseCase struct {
	paymentRepo      payment.Repository
	memberRepo       member.Repository
	subscriptionRepo subscription.Repository
	ledger           *Ledger
	txManager        db.Transactor
	gate             authorization.Gate
	logger           logger.Interface
}

func NewDeletePaymentUseCase(
	paymentRepo payment.Repository,
	memberRepo member.Repository,
	subscriptionRepo subscription.Repository,
	ledger *Ledger,
	txManager db.Transactor,
	gate authorization.Gate,
	logger logger.Interface,
) *DeletePaymentUseCase {
	return &DeletePaymentUseCase{
		paymentRepo:      paymentRepo,
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		ledger:           ledger,
		txManager:        txManager,
		gate:             gate,
		logger:           logger,
	}
}

// Execute removes the payment and reconciles its subscription, which may move
// the payment status backwards.
func (uc *DeletePaymentUseCase) Execute(ctx context.Context, cmd DeletePaymentCommand) error {
	if err := authorization.RequireAdminister(uc.gate, cmd.Actor, "delete payment"); err != nil {
		return err
	}

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := uc.paymentRepo.GetByID(ctx, cmd.PaymentID)
		if err != nil {
			return fmt.Errorf("failed to get payment: %w", err)
		}
		if p == nil {
			return errors.NewNotFoundError("payment not found", fmt.Sprintf("payment_id=%d", cmd.PaymentID))
		}

		if _, err := uc.memberRepo.LockByID(ctx, p.MemberID()); err != nil {
			return fmt.Errorf("failed to lock member: %w", err)
		}

		if err := uc.paymentRepo.Delete(ctx, p.ID()); err != nil {
			return err
		}

		sub, err := uc.subscriptionRepo.GetByID(ctx, p.SubscriptionID())
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil {
			return nil
		}
		return uc.ledger.Reconcile(ctx, sub)
	})
	if err != nil {
		uc.logger.Warnw("failed to delete payment", "error", err, "payment_id", cmd.PaymentID)
		return err
	}

	uc.logger.Infow("payment deleted", "payment_id", cmd.PaymentID, "staff_id", cmd.Actor.StaffID)
	return nil
}
