package usecases

import (
	"context"
	"fmt"
	"time"

	paymentusecases "f3manager/internal/application/payment/usecases"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	paymentvo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
)

// Terms holds the membership rules that shape new subscriptions.
type Terms struct {
	PermanentDays int
	DefaultMethod paymentvo.PaymentMethod
}

// PaymentInfo describes the payment taken when a subscription is sold.
// A nil AmountPaid charges the full plan price; a zero amount records nothing.
type PaymentInfo struct {
	AmountPaid *sharedvo.Money
	Method     string
	Reference  string
	Notes      string
}

// recordInitialPayment is shared by create and renew so both paths apply the
// same amount and method defaults.
func recordInitialPayment(
	ctx context.Context,
	recorder PaymentRecorder,
	sub *subscription.Subscription,
	info PaymentInfo,
	defaultMethod paymentvo.PaymentMethod,
	today time.Time,
) (*payment.Payment, error) {
	amount := sub.PlanPrice()
	if info.AmountPaid != nil {
		amount = *info.AmountPaid
	}
	if amount.IsNegative() {
		return nil, errors.NewValidationError(payment.ErrNonPositiveAmount.Error())
	}
	if amount.IsZero() {
		return nil, nil
	}

	entry, err := paymentusecases.BuildEntry(amount, nil, info.Method, info.Reference, info.Notes, defaultMethod, today)
	if err != nil {
		return nil, err
	}
	return recorder.Record(ctx, sub, sub.MemberID(), entry)
}

func lockActiveMember(ctx context.Context, repo member.Repository, memberID uint) (*member.Member, error) {
	m, err := repo.LockByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock member: %w", err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError(member.ErrMemberNotFound.Error(), fmt.Sprintf("member_id=%d", memberID))
	}
	if !m.IsActive() {
		return nil, errors.NewPreconditionFailedError(member.ErrMemberInactive.Error(), fmt.Sprintf("member_id=%d", memberID))
	}
	return m, nil
}

func loadActivePlan(ctx context.Context, repo subscription.PlanRepository, planID uint) (*subscription.Plan, error) {
	plan, err := loadPlan(ctx, repo, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive() {
		return nil, errors.NewPreconditionFailedError(subscription.ErrPlanInactive.Error(), fmt.Sprintf("plan_id=%d", planID))
	}
	return plan, nil
}

func loadSubscription(ctx context.Context, repo subscription.Repository, id uint) (*subscription.Subscription, error) {
	sub, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError(subscription.ErrSubscriptionNotFound.Error(), fmt.Sprintf("subscription_id=%d", id))
	}
	return sub, nil
}

// ensureNoCurrent fails with a conflict naming the subscription that already
// covers today for the member.
func ensureNoCurrent(ctx context.Context, repo subscription.Repository, memberID uint, today time.Time, excludeID uint) error {
	current, err := repo.FindCurrentForMember(ctx, memberID, today, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check current subscription: %w", err)
	}
	if current != nil {
		return errors.NewConflictError(
			fmt.Sprintf("member already has an active subscription until %s", biztime.FormatDate(current.EndDate())),
			fmt.Sprintf("subscription_id=%d", current.ID()),
			fmt.Sprintf("end_date=%s", biztime.FormatDate(current.EndDate())),
		)
	}
	return nil
}

func newSubscription(m *member.Member, plan *subscription.Plan, start, today time.Time, terms Terms, notes string, now time.Time) (*subscription.Subscription, error) {
	sub, err := subscription.NewSubscription(m.ID(), plan, start, today, terms.PermanentDays, notes, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return sub, nil
}
