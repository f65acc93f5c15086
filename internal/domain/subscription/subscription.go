package subscription

import (
	"fmt"
	"time"

	sharedvo "f3manager/internal/domain/shared/valueobjects"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/shared/biztime"
)

// Subscription is a member's purchased membership period. The plan price is
// copied at creation so later catalog changes never rewrite history.
type Subscription struct {
	id            uint
	memberID      uint
	planID        uint
	planPrice     sharedvo.Money
	startDate     time.Time
	endDate       time.Time
	status        vo.SubscriptionStatus
	paymentStatus vo.PaymentStatus
	amountPaid    sharedvo.Money
	notes         string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewSubscription instantiates plan for a member starting on start. Start
// dates before today are rejected.
func NewSubscription(memberID uint, plan *Plan, start, today time.Time, permanentDays int, notes string, now time.Time) (*Subscription, error) {
	if memberID == 0 {
		return nil, fmt.Errorf("member ID is required")
	}
	if plan == nil || plan.ID() == 0 {
		return nil, fmt.Errorf("plan is required")
	}
	start = biztime.Normalize(start)
	if start.Before(biztime.Normalize(today)) {
		return nil, fmt.Errorf("%w: %s", ErrStartDateInPast, biztime.FormatDate(start))
	}

	return &Subscription{
		memberID:      memberID,
		planID:        plan.ID(),
		planPrice:     plan.Price(),
		startDate:     start,
		endDate:       plan.EndDateFor(start, permanentDays),
		status:        vo.StatusActive,
		paymentStatus: vo.DerivePaymentStatus(sharedvo.Zero(), plan.Price()),
		amountPaid:    sharedvo.Zero(),
		notes:         notes,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(
	id, memberID, planID uint,
	planPrice sharedvo.Money,
	startDate, endDate time.Time,
	status vo.SubscriptionStatus,
	paymentStatus vo.PaymentStatus,
	amountPaid sharedvo.Money,
	notes string,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	if !paymentStatus.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", paymentStatus)
	}
	return &Subscription{
		id:            id,
		memberID:      memberID,
		planID:        planID,
		planPrice:     planPrice,
		startDate:     startDate,
		endDate:       endDate,
		status:        status,
		paymentStatus: paymentStatus,
		amountPaid:    amountPaid,
		notes:         notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                        { return s.id }
func (s *Subscription) MemberID() uint                  { return s.memberID }
func (s *Subscription) PlanID() uint                    { return s.planID }
func (s *Subscription) PlanPrice() sharedvo.Money       { return s.planPrice }
func (s *Subscription) StartDate() time.Time            { return s.startDate }
func (s *Subscription) EndDate() time.Time              { return s.endDate }
func (s *Subscription) Status() vo.SubscriptionStatus   { return s.status }
func (s *Subscription) PaymentStatus() vo.PaymentStatus { return s.paymentStatus }
func (s *Subscription) AmountPaid() sharedvo.Money      { return s.amountPaid }
func (s *Subscription) Notes() string                   { return s.notes }
func (s *Subscription) CreatedAt() time.Time            { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time            { return s.updatedAt }

// Balance returns what is still owed, never negative.
func (s *Subscription) Balance() sharedvo.Money {
	b := s.planPrice.Sub(s.amountPaid)
	if b.IsNegative() {
		return sharedvo.Zero()
	}
	return b
}

// IsLapsed reports whether the covered period ended before today.
func (s *Subscription) IsLapsed(today time.Time) bool {
	return s.endDate.Before(biztime.Normalize(today))
}

// IsCurrent reports whether the subscription is active and still covers today.
func (s *Subscription) IsCurrent(today time.Time) bool {
	return s.status == vo.StatusActive && !s.IsLapsed(today)
}

// EffectiveStatus is the status a reader should see today, without mutating.
func (s *Subscription) EffectiveStatus(today time.Time) vo.SubscriptionStatus {
	if s.status == vo.StatusActive && s.IsLapsed(today) {
		return vo.StatusExpired
	}
	return s.status
}

// DaysRemaining counts days from today until the end date (negative once lapsed).
func (s *Subscription) DaysRemaining(today time.Time) int {
	return biztime.DaysBetween(today, s.endDate)
}

// ObserveExpiry applies the time-driven active to expired transition when the
// end date has passed. It returns true only when the status changed, so
// observing an already expired subscription is a no-op.
func (s *Subscription) ObserveExpiry(today, now time.Time) bool {
	if s.EffectiveStatus(today) == s.status {
		return false
	}
	s.status = vo.StatusExpired
	s.updatedAt = now
	return true
}

// Expire closes an active subscription, used when it is superseded by a renewal.
func (s *Subscription) Expire(now time.Time) error {
	if s.status == vo.StatusExpired {
		return nil
	}
	return s.transitionTo(vo.StatusExpired, now)
}

// Cancel administratively ends an active subscription. Payment history is kept.
func (s *Subscription) Cancel(now time.Time) error {
	return s.transitionTo(vo.StatusCancelled, now)
}

func (s *Subscription) transitionTo(target vo.SubscriptionStatus, now time.Time) error {
	if !s.status.CanTransitionTo(target) {
		return ErrInvalidTransition(s.status.String(), target.String())
	}
	s.status = target
	s.updatedAt = now
	return nil
}

// RenewalStartDate is the default start of a renewal: the day after the
// current end date while it still covers today, otherwise today.
func (s *Subscription) RenewalStartDate(today time.Time) time.Time {
	if s.IsLapsed(today) {
		return biztime.Normalize(today)
	}
	return biztime.AddDays(s.endDate, 1)
}

// ApplyPaymentTotal records the ledger's cumulative total and derives the payment status.
func (s *Subscription) ApplyPaymentTotal(total sharedvo.Money, now time.Time) {
	s.amountPaid = total
	s.paymentStatus = vo.DerivePaymentStatus(total, s.planPrice)
	s.updatedAt = now
}

func (s *Subscription) SetNotes(notes string, now time.Time) {
	s.notes = notes
	s.updatedAt = now
}

// SetID sets the subscription ID after persistence
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}
