package usecases

import (
	"context"

	"f3manager/internal/domain/payment"
	"f3manager/internal/domain/subscription"
)

// PaymentRecorder appends a payment to a subscription and reconciles its
// payment status.
type PaymentRecorder interface {
	Record(ctx context.Context, sub *subscription.Subscription, memberID uint, entry payment.Entry) (*payment.Payment, error)
}

// ExpiryObserver persists lazy expiry on subscriptions about to be returned.
type ExpiryObserver interface {
	Observe(ctx context.Context, subs ...*subscription.Subscription) error
}
