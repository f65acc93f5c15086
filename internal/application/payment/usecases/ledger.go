package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/payment"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/infrastructure/metrics"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

// Ledger owns the payment records of a subscription and keeps the
// subscription's amount_paid and payment_status equal to their sum. Callers
// run it inside the transaction that holds the member lock.
type Ledger struct {
	paymentRepo      payment.Repository
	subscriptionRepo subscription.Repository
	clock            biztime.Clock
	logger           logger.Interface
}

func NewLedger(
	paymentRepo payment.Repository,
	subscriptionRepo subscription.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *Ledger {
	return &Ledger{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

// Record appends a payment against sub and reconciles it. The payment only
// counts once the caller's transaction commits, see CountRecorded.
func (l *Ledger) Record(ctx context.Context, sub *subscription.Subscription, memberID uint, entry payment.Entry) (*payment.Payment, error) {
	if sub.MemberID() != memberID {
		return nil, errors.NewValidationError(payment.ErrMemberMismatch.Error(),
			fmt.Sprintf("subscription %d belongs to member %d", sub.ID(), sub.MemberID()))
	}

	p, err := payment.NewPayment(sub.ID(), memberID, entry, l.clock.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := l.paymentRepo.Create(ctx, p); err != nil {
		l.logger.Errorw("failed to create payment", "error", err, "subscription_id", sub.ID())
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if err := l.Reconcile(ctx, sub); err != nil {
		return nil, err
	}

	l.logger.Infow("payment recorded",
		"payment_id", p.ID(),
		"subscription_id", sub.ID(),
		"amount", p.Amount().String(),
		"method", p.Method(),
		"payment_status", sub.PaymentStatus(),
	)
	return p, nil
}

// Reconcile recomputes sub's cumulative payment from storage and persists it.
func (l *Ledger) Reconcile(ctx context.Context, sub *subscription.Subscription) error {
	total, err := l.paymentRepo.SumForSubscription(ctx, sub.ID())
	if err != nil {
		l.logger.Errorw("failed to sum payments", "error", err, "subscription_id", sub.ID())
		return fmt.Errorf("failed to sum payments: %w", err)
	}

	sub.ApplyPaymentTotal(total, l.clock.Now())
	if err := l.subscriptionRepo.Update(ctx, sub); err != nil {
		l.logger.Errorw("failed to update subscription payment status", "error", err, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription payment status: %w", err)
	}
	return nil
}

// CountRecorded feeds the payment metrics for p. Callers invoke it after the
// transaction that recorded p has committed. A nil p is ignored.
func CountRecorded(p *payment.Payment) {
	if p == nil {
		return
	}
	metrics.RecordPayment(p.Method().String(), p.Amount().Cents())
}
