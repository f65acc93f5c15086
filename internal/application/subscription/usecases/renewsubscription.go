package usecases

import (
	"context"
	"fmt"
	"time"

	paymentusecases "f3manager/internal/application/payment/usecases"
	"f3manager/internal/application/subscription/dto"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/infrastructure/metrics"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type RenewSubscriptionCommand struct {
	SubscriptionID uint
	PlanID         *uint      // defaults to the renewed subscription's plan
	StartDate      *time.Time // defaults to the renewal start policy
	Notes          string
	Payment        PaymentInfo
}

type RenewSubscriptionResult struct {
	Subscription *dto.SubscriptionDTO
	Previous     *dto.SubscriptionDTO
	Payment      *payment.Payment
}

type RenewSubscriptionUseCase struct {
	memberRepo       member.Repository
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.Repository
	recorder         PaymentRecorder
	observer         ExpiryObserver
	txManager        db.Transactor
	clock            biztime.Clock
	terms            Terms
	logger           logger.Interface
}

func NewRenewSubscriptionUseCase(
	memberRepo member.Repository,
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.Repository,
	recorder PaymentRecorder,
	observer ExpiryObserver,
	txManager db.Transactor,
	clock biztime.Clock,
	terms Terms,
	logger logger.Interface,
) *RenewSubscriptionUseCase {
	return &RenewSubscriptionUseCase{
		memberRepo:       memberRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		recorder:         recorder,
		observer:         observer,
		txManager:        txManager,
		clock:            clock,
		terms:            terms,
		logger:           logger,
	}
}

// Execute sells a follow-up subscription and closes the renewed one. Without
// an explicit start date an early renewal begins the day after the old end
// date and a lapsed one begins today.
func (uc *RenewSubscriptionUseCase) Execute(ctx context.Context, cmd RenewSubscriptionCommand) (*RenewSubscriptionResult, error) {
	today := uc.clock.Today()
	now := uc.clock.Now()

	var (
		old, renewed *subscription.Subscription
		plan         *subscription.Plan
		oldPlan      *subscription.Plan
		m            *member.Member
		initial      *payment.Payment
	)
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if old, err = loadSubscription(ctx, uc.subscriptionRepo, cmd.SubscriptionID); err != nil {
			return err
		}
		if m, err = lockActiveMember(ctx, uc.memberRepo, old.MemberID()); err != nil {
			return err
		}
		if err := uc.observer.Observe(ctx, old); err != nil {
			return err
		}

		planID := old.PlanID()
		if cmd.PlanID != nil {
			planID = *cmd.PlanID
		}
		if plan, err = loadActivePlan(ctx, uc.planRepo, planID); err != nil {
			return err
		}
		oldPlan = plan
		if planID != old.PlanID() {
			if oldPlan, err = uc.planRepo.GetByID(ctx, old.PlanID()); err != nil {
				return fmt.Errorf("failed to get plan: %w", err)
			}
		}

		if err := ensureNoCurrent(ctx, uc.subscriptionRepo, m.ID(), today, old.ID()); err != nil {
			return err
		}

		start := old.RenewalStartDate(today)
		if cmd.StartDate != nil {
			start = biztime.Normalize(*cmd.StartDate)
		}
		if renewed, err = newSubscription(m, plan, start, today, uc.terms, utils.SanitizeText(cmd.Notes), now); err != nil {
			return err
		}

		if old.Status() == vo.StatusActive {
			if err := old.Expire(now); err != nil {
				return err
			}
			if err := uc.subscriptionRepo.Update(ctx, old); err != nil {
				return err
			}
		}

		if err := uc.subscriptionRepo.Create(ctx, renewed); err != nil {
			return err
		}

		initial, err = recordInitialPayment(ctx, uc.recorder, renewed, cmd.Payment, uc.terms.DefaultMethod, today)
		return err
	})
	if err != nil {
		uc.logger.Warnw("failed to renew subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, err
	}

	metrics.RecordSubscription("renewal")
	paymentusecases.CountRecorded(initial)
	uc.logger.Infow("subscription renewed",
		"previous_subscription_id", old.ID(),
		"subscription_id", renewed.ID(),
		"member_id", m.ID(),
		"plan_id", plan.ID(),
		"start_date", biztime.FormatDate(renewed.StartDate()),
		"end_date", biztime.FormatDate(renewed.EndDate()),
	)

	return &RenewSubscriptionResult{
		Subscription: dto.ToSubscriptionDTO(renewed, plan, m, today),
		Previous:     dto.ToSubscriptionDTO(old, oldPlan, m, today),
		Payment:      initial,
	}, nil
}
