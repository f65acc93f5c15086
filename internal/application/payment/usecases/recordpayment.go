package usecases

import (
	"context"
	"fmt"
	"time"

	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	vo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type RecordPaymentCommand struct {
	SubscriptionID uint
	MemberID       uint
	Amount         sharedvo.Money
	PaymentDate    *time.Time // defaults to today
	Method         string     // defaults to the configured method
	Reference      string
	Notes          string
}

type RecordPaymentUseCase struct {
	memberRepo       member.Repository
	subscriptionRepo subscription.Repository
	ledger           *Ledger
	txManager        db.Transactor
	clock            biztime.Clock
	defaultMethod    vo.PaymentMethod
	logger           logger.Interface
}

func NewRecordPaymentUseCase(
	memberRepo member.Repository,
	subscriptionRepo subscription.Repository,
	ledger *Ledger,
	txManager db.Transactor,
	clock biztime.Clock,
	defaultMethod vo.PaymentMethod,
	logger logger.Interface,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		ledger:           ledger,
		txManager:        txManager,
		clock:            clock,
		defaultMethod:    defaultMethod,
		logger:           logger,
	}
}

func (uc *RecordPaymentUseCase) Execute(ctx context.Context, cmd RecordPaymentCommand) (*payment.Payment, error) {
	entry, err := BuildEntry(cmd.Amount, cmd.PaymentDate, cmd.Method, cmd.Reference, cmd.Notes, uc.defaultMethod, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	if !entry.Amount.IsPositive() {
		return nil, errors.NewValidationError(payment.ErrNonPositiveAmount.Error())
	}

	var recorded *payment.Payment
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		m, err := uc.memberRepo.LockByID(ctx, cmd.MemberID)
		if err != nil {
			return fmt.Errorf("failed to get member: %w", err)
		}
		if m == nil {
			return errors.NewNotFoundError("member not found", fmt.Sprintf("member_id=%d", cmd.MemberID))
		}

		sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil {
			return errors.NewNotFoundError("subscription not found", fmt.Sprintf("subscription_id=%d", cmd.SubscriptionID))
		}

		recorded, err = uc.ledger.Record(ctx, sub, m.ID(), entry)
		return err
	})
	if err != nil {
		uc.logger.Warnw("failed to record payment", "error", err,
			"subscription_id", cmd.SubscriptionID, "member_id", cmd.MemberID)
		return nil, err
	}

	CountRecorded(recorded)
	return recorded, nil
}

// BuildEntry validates the descriptive payment fields shared by manual
// payments and the initial payment of a subscription.
func BuildEntry(amount sharedvo.Money, date *time.Time, method, reference, notes string, defaultMethod vo.PaymentMethod, today time.Time) (payment.Entry, error) {
	pm := defaultMethod
	if method != "" {
		parsed, err := vo.NewPaymentMethod(method)
		if err != nil {
			return payment.Entry{}, errors.NewValidationError(err.Error())
		}
		pm = parsed
	}

	paymentDate := biztime.Normalize(today)
	if date != nil {
		paymentDate = biztime.Normalize(*date)
	}

	return payment.Entry{
		Amount:      amount,
		PaymentDate: paymentDate,
		Method:      pm,
		Reference:   reference,
		Notes:       utils.SanitizeText(notes),
	}, nil
}
