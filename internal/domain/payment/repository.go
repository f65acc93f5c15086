package payment

import (
	"context"
	"time"

	vo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
)

// ListFilter narrows payment listings; date bounds are inclusive.
type ListFilter struct {
	MemberID       *uint
	SubscriptionID *uint
	Method         *vo.PaymentMethod
	From           *time.Time
	To             *time.Time
	Skip           int
	Limit          int
}

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	List(ctx context.Context, filter ListFilter) ([]*Payment, int64, error)

	// SumForSubscription totals all payments recorded against a subscription.
	SumForSubscription(ctx context.Context, subscriptionID uint) (sharedvo.Money, error)
	CountForSubscription(ctx context.Context, subscriptionID uint) (int64, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*Payment, error)
	ListRecent(ctx context.Context, limit int) ([]*Payment, error)
}
