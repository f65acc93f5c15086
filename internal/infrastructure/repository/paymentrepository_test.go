package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/domain/payment"
	paymentvo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/logger"
)

func TestPaymentRepository_SumAndList(t *testing.T) {
	f := newFixture(t)
	payments := NewPaymentRepository(f.db, logger.NewNopLogger())
	m := f.member(t, "Ana", "")
	plan := f.plan(t, "Mensual", 50000, 30)
	sub := f.subscription(t, m, plan, testToday)

	empty, err := payments.SumForSubscription(ctx, sub.ID())
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	record := func(cents int64, day time.Time, method paymentvo.PaymentMethod) *payment.Payment {
		p, err := payment.NewPayment(sub.ID(), m.ID(), payment.Entry{
			Amount: sharedvo.NewMoney(cents), PaymentDate: day, Method: method,
		}, testNow)
		require.NoError(t, err)
		require.NoError(t, payments.Create(ctx, p))
		return p
	}
	first := record(20000, biztime.AddDays(testToday, -1), paymentvo.PaymentMethodCash)
	second := record(10001, testToday, paymentvo.PaymentMethodCard)

	sum, err := payments.SumForSubscription(ctx, sub.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(30001), sum.Cents())

	n, err := payments.CountForSubscription(ctx, sub.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, total, err := payments.List(ctx, payment.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, second.ID(), list[0].ID(), "newest payment date first")

	card := paymentvo.PaymentMethodCard
	list, total, err = payments.List(ctx, payment.ListFilter{Method: &card})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, second.ID(), list[0].ID())

	from := testToday
	list, _, err = payments.List(ctx, payment.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	between, err := payments.ListBetween(ctx, biztime.AddDays(testToday, -1), biztime.AddDays(testToday, -1))
	require.NoError(t, err)
	require.Len(t, between, 1)
	assert.Equal(t, first.ID(), between[0].ID())

	recent, err := payments.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	require.NoError(t, payments.Delete(ctx, first.ID()))
	sum, err = payments.SumForSubscription(ctx, sub.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(10001), sum.Cents())
}

func TestPaymentRepository_Update(t *testing.T) {
	f := newFixture(t)
	payments := NewPaymentRepository(f.db, logger.NewNopLogger())
	m := f.member(t, "Ana", "")
	plan := f.plan(t, "Mensual", 50000, 30)
	sub := f.subscription(t, m, plan, testToday)

	p, err := payment.NewPayment(sub.ID(), m.ID(), payment.Entry{
		Amount: sharedvo.NewMoney(50000), PaymentDate: testToday, Method: paymentvo.PaymentMethodCash,
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, payments.Create(ctx, p))

	transfer := paymentvo.PaymentMethodTransfer
	ref := "SPEI-123"
	require.NoError(t, p.ApplyPatch(payment.Patch{Method: &transfer, Reference: &ref}, testNow))
	require.NoError(t, payments.Update(ctx, p))

	got, err := payments.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, paymentvo.PaymentMethodTransfer, got.Method())
	assert.Equal(t, "SPEI-123", got.Reference())
	assert.Equal(t, int64(50000), got.Amount().Cents())
}
