package usecases

import (
	"context"
	"time"

	paymentusecases "f3manager/internal/application/payment/usecases"
	"f3manager/internal/application/subscription/dto"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/infrastructure/metrics"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type CreateSubscriptionCommand struct {
	MemberID  uint
	PlanID    uint
	StartDate *time.Time // defaults to today
	Notes     string
	Payment   PaymentInfo
}

type CreateSubscriptionResult struct {
	Subscription *dto.SubscriptionDTO
	// Payment is nil when nothing was charged.
	Payment *payment.Payment
}

type CreateSubscriptionUseCase struct {
	memberRepo       member.Repository
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.Repository
	recorder         PaymentRecorder
	txManager        db.Transactor
	clock            biztime.Clock
	terms            Terms
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	memberRepo member.Repository,
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.Repository,
	recorder PaymentRecorder,
	txManager db.Transactor,
	clock biztime.Clock,
	terms Terms,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		memberRepo:       memberRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		recorder:         recorder,
		txManager:        txManager,
		clock:            clock,
		terms:            terms,
		logger:           logger,
	}
}

// Execute sells plan to the member. The member row stays locked until
// commit, so two concurrent sales for one member cannot both pass the
// current subscription check.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	today := uc.clock.Today()
	now := uc.clock.Now()

	start := today
	if cmd.StartDate != nil {
		start = biztime.Normalize(*cmd.StartDate)
	}

	var (
		sub     *subscription.Subscription
		plan    *subscription.Plan
		m       *member.Member
		initial *payment.Payment
	)
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if m, err = lockActiveMember(ctx, uc.memberRepo, cmd.MemberID); err != nil {
			return err
		}
		if plan, err = loadActivePlan(ctx, uc.planRepo, cmd.PlanID); err != nil {
			return err
		}
		if err := ensureNoCurrent(ctx, uc.subscriptionRepo, m.ID(), today, 0); err != nil {
			return err
		}

		if sub, err = newSubscription(m, plan, start, today, uc.terms, utils.SanitizeText(cmd.Notes), now); err != nil {
			return err
		}
		if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
			return err
		}

		initial, err = recordInitialPayment(ctx, uc.recorder, sub, cmd.Payment, uc.terms.DefaultMethod, today)
		return err
	})
	if err != nil {
		uc.logger.Warnw("failed to create subscription", "error", err,
			"member_id", cmd.MemberID, "plan_id", cmd.PlanID)
		return nil, err
	}

	metrics.RecordSubscription("new")
	paymentusecases.CountRecorded(initial)
	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"member_id", m.ID(),
		"plan_id", plan.ID(),
		"start_date", biztime.FormatDate(sub.StartDate()),
		"end_date", biztime.FormatDate(sub.EndDate()),
		"payment_status", sub.PaymentStatus(),
	)

	return &CreateSubscriptionResult{
		Subscription: dto.ToSubscriptionDTO(sub, plan, m, today),
		Payment:      initial,
	}, nil
}
