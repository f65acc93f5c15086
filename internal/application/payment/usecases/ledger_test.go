package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/application/apptest"
	"f3manager/internal/domain/payment"
	vo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	subvo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/infrastructure/metrics"
	"f3manager/internal/shared/errors"
)

type paymentSuite struct {
	h       *apptest.Harness
	ledger  *Ledger
	record  *RecordPaymentUseCase
	del     *DeletePaymentUseCase
	summary *GetPaymentSummaryUseCase
}

func newPaymentSuite(t *testing.T) *paymentSuite {
	h := apptest.New(t)
	ledger := NewLedger(h.Payments, h.Subscriptions, h.Clock, h.Logger)
	return &paymentSuite{
		h:       h,
		ledger:  ledger,
		record:  NewRecordPaymentUseCase(h.Members, h.Subscriptions, ledger, h.Tx, h.Clock, vo.PaymentMethodCash, h.Logger),
		del:     NewDeletePaymentUseCase(h.Payments, h.Members, h.Subscriptions, ledger, h.Tx, h.Gate, h.Logger),
		summary: NewGetPaymentSummaryUseCase(h.Payments, h.Clock, h.Logger),
	}
}

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	s := newPaymentSuite(t)
	ctx := context.Background()
	m := s.h.Member(t, "Ana")
	plan := s.h.Plan(t, "Mensual", 50000, 30)
	sub := s.h.Subscription(t, m, plan, s.h.Today())

	p, err := s.record.Execute(ctx, RecordPaymentCommand{
		SubscriptionID: sub.ID(),
		MemberID:       m.ID(),
		Amount:         sharedvo.NewMoney(20000),
	})
	require.NoError(t, err)
	assert.Equal(t, vo.PaymentMethodCash, p.Method())
	assert.Equal(t, s.h.Today(), p.PaymentDate())

	stored := s.h.Reload(t, sub.ID())
	assert.Equal(t, subvo.PaymentStatusPartial, stored.PaymentStatus())
	assert.Equal(t, int64(30000), stored.Balance().Cents())

	_, err = s.record.Execute(ctx, RecordPaymentCommand{
		SubscriptionID: sub.ID(),
		MemberID:       m.ID(),
		Amount:         sharedvo.NewMoney(30000),
		Method:         "tarjeta",
	})
	require.NoError(t, err)

	stored = s.h.Reload(t, sub.ID())
	assert.Equal(t, subvo.PaymentStatusPaid, stored.PaymentStatus())
	assert.Equal(t, int64(50000), stored.AmountPaid().Cents())
	assert.True(t, stored.Balance().IsZero())
}

func TestRecordPayment_Rejections(t *testing.T) {
	s := newPaymentSuite(t)
	ctx := context.Background()
	ana := s.h.Member(t, "Ana")
	luis := s.h.Member(t, "Luis")
	plan := s.h.Plan(t, "Mensual", 50000, 30)
	sub := s.h.Subscription(t, ana, plan, s.h.Today())

	tests := []struct {
		name string
		cmd  RecordPaymentCommand
		want errors.ErrorType
	}{
		{
			name: "member mismatch",
			cmd:  RecordPaymentCommand{SubscriptionID: sub.ID(), MemberID: luis.ID(), Amount: sharedvo.NewMoney(100)},
			want: errors.ErrorTypeValidation,
		},
		{
			name: "zero amount",
			cmd:  RecordPaymentCommand{SubscriptionID: sub.ID(), MemberID: ana.ID(), Amount: sharedvo.Zero()},
			want: errors.ErrorTypeValidation,
		},
		{
			name: "unknown method",
			cmd:  RecordPaymentCommand{SubscriptionID: sub.ID(), MemberID: ana.ID(), Amount: sharedvo.NewMoney(100), Method: "bitcoin"},
			want: errors.ErrorTypeValidation,
		},
		{
			name: "missing member",
			cmd:  RecordPaymentCommand{SubscriptionID: sub.ID(), MemberID: 999, Amount: sharedvo.NewMoney(100)},
			want: errors.ErrorTypeNotFound,
		},
		{
			name: "missing subscription",
			cmd:  RecordPaymentCommand{SubscriptionID: 999, MemberID: ana.ID(), Amount: sharedvo.NewMoney(100)},
			want: errors.ErrorTypeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.record.Execute(ctx, tt.cmd)
			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.want, appErr.Type)
		})
	}

	stored := s.h.Reload(t, sub.ID())
	assert.Equal(t, subvo.PaymentStatusPending, stored.PaymentStatus())
}

func TestDeletePayment_ReconcilesBackwards(t *testing.T) {
	s := newPaymentSuite(t)
	ctx := context.Background()
	m := s.h.Member(t, "Ana")
	plan := s.h.Plan(t, "Mensual", 50000, 30)
	sub := s.h.Subscription(t, m, plan, s.h.Today())

	_, err := s.record.Execute(ctx, RecordPaymentCommand{SubscriptionID: sub.ID(), MemberID: m.ID(), Amount: sharedvo.NewMoney(20000)})
	require.NoError(t, err)
	second, err := s.record.Execute(ctx, RecordPaymentCommand{SubscriptionID: sub.ID(), MemberID: m.ID(), Amount: sharedvo.NewMoney(30000)})
	require.NoError(t, err)
	require.Equal(t, subvo.PaymentStatusPaid, s.h.Reload(t, sub.ID()).PaymentStatus())

	err = s.del.Execute(ctx, DeletePaymentCommand{PaymentID: second.ID(), Actor: apptest.Operator})
	assert.True(t, errors.IsForbiddenError(err))

	require.NoError(t, s.del.Execute(ctx, DeletePaymentCommand{PaymentID: second.ID(), Actor: apptest.Admin}))

	stored := s.h.Reload(t, sub.ID())
	assert.Equal(t, subvo.PaymentStatusPartial, stored.PaymentStatus())
	assert.Equal(t, int64(20000), stored.AmountPaid().Cents())

	err = s.del.Execute(ctx, DeletePaymentCommand{PaymentID: second.ID(), Actor: apptest.Admin})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetPaymentSummary_ByMethod(t *testing.T) {
	s := newPaymentSuite(t)
	ctx := context.Background()
	m := s.h.Member(t, "Ana")
	plan := s.h.Plan(t, "Anual", 500000, 365)
	sub := s.h.Subscription(t, m, plan, s.h.Today())

	lastMonth := biztime.NewDate(2025, 2, 20)
	for _, c := range []RecordPaymentCommand{
		{Amount: sharedvo.NewMoney(10000), Method: "cash"},
		{Amount: sharedvo.NewMoney(15000), Method: "efectivo"},
		{Amount: sharedvo.NewMoney(40000), Method: "card"},
		{Amount: sharedvo.NewMoney(99900), Method: "transfer", PaymentDate: &lastMonth},
	} {
		c.SubscriptionID = sub.ID()
		c.MemberID = m.ID()
		_, err := s.record.Execute(ctx, c)
		require.NoError(t, err)
	}

	summary, err := s.summary.Execute(ctx, GetPaymentSummaryQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", summary.From)
	assert.Equal(t, "2025-03-10", summary.To)
	assert.Equal(t, int64(3), summary.Count)
	assert.Equal(t, "650.00", summary.Total.String())

	byMethod := map[string]int64{}
	for _, mt := range summary.ByMethod {
		byMethod[mt.Method] = mt.Count
	}
	assert.Equal(t, int64(2), byMethod["cash"])
	assert.Equal(t, int64(1), byMethod["card"])
	assert.NotContains(t, byMethod, "transfer")

	from := biztime.NewDate(2025, 3, 10)
	to := biztime.NewDate(2025, 3, 1)
	_, err = s.summary.Execute(ctx, GetPaymentSummaryQuery{From: &from, To: &to})
	assert.True(t, errors.IsValidationError(err))
}

func TestLedger_CountsPaymentsOnlyAfterCommit(t *testing.T) {
	s := newPaymentSuite(t)
	ctx := context.Background()
	m := s.h.Member(t, "Ana")
	sub := s.h.Subscription(t, m, s.h.Plan(t, "Mensual", 50000, 30), s.h.Today())
	transfers := metrics.PaymentsTotal.WithLabelValues(vo.PaymentMethodTransfer.String())
	before := testutil.ToFloat64(transfers)

	rollback := stderrors.New("sale abandoned")
	err := s.h.Tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.ledger.Record(ctx, sub, m.ID(), payment.Entry{
			Amount:      sharedvo.NewMoney(50000),
			PaymentDate: s.h.Today(),
			Method:      vo.PaymentMethodTransfer,
		}); err != nil {
			return err
		}
		return rollback
	})
	require.ErrorIs(t, err, rollback)
	assert.Equal(t, before, testutil.ToFloat64(transfers))
	assert.Equal(t, int64(0), s.h.Reload(t, sub.ID()).AmountPaid().Cents())

	_, err = s.record.Execute(ctx, RecordPaymentCommand{
		SubscriptionID: sub.ID(),
		MemberID:       m.ID(),
		Amount:         sharedvo.NewMoney(50000),
		Method:         "transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(transfers))
}
