package subscription

import (
	"context"
	"time"

	vo "f3manager/internal/domain/subscription/valueobjects"
)

type PlanListFilter struct {
	ActiveOnly bool
	Skip       int
	Limit      int
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetByName(ctx context.Context, name string) (*Plan, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Plan, error)
	List(ctx context.Context, filter PlanListFilter) ([]*Plan, int64, error)
}

// ListFilter narrows subscription listings. CurrentOnly keeps active
// subscriptions whose end date is on or after Today.
type ListFilter struct {
	MemberID    *uint
	PlanID      *uint
	Status      *vo.SubscriptionStatus
	CurrentOnly bool
	Today       time.Time
	Skip        int
	Limit       int
}

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Subscription, error)
	List(ctx context.Context, filter ListFilter) ([]*Subscription, int64, error)

	// FindCurrentForMember returns the member's active subscription whose end
	// date is on or after today, ignoring excludeID (0 excludes nothing).
	FindCurrentForMember(ctx context.Context, memberID uint, today time.Time, excludeID uint) (*Subscription, error)
	// ListCurrentForMembers returns, per member, the current subscription with the latest end date.
	ListCurrentForMembers(ctx context.Context, memberIDs []uint, today time.Time) (map[uint]*Subscription, error)
	// MarkExpired persists the lazy expiry transition with a conditional
	// update. It reports whether a row changed.
	MarkExpired(ctx context.Context, id uint, today, now time.Time) (bool, error)

	CountByPlan(ctx context.Context, planID uint) (int64, error)
	ListCurrent(ctx context.Context, today time.Time) ([]*Subscription, error)
	ListEndingBetween(ctx context.Context, from, to time.Time) ([]*Subscription, error)
	ListStartedBetween(ctx context.Context, from, to time.Time) ([]*Subscription, error)
}
