// Package apptest wires real repositories over an in-memory database for
// use case tests.
package apptest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	paymentvo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/staff"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/infrastructure/database/dbtest"
	"f3manager/internal/infrastructure/repository"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/logger"
)

var (
	Admin    = authorization.Actor{StaffID: 1, Username: "admin", Role: authorization.RoleAdmin}
	Operator = authorization.Actor{StaffID: 2, Username: "recepcion", Role: authorization.RoleOperator}
)

func init() {
	biztime.MustInit("America/Mexico_City")
}

type Harness struct {
	DB            *gorm.DB
	Clock         *biztime.FixedClock
	Tx            *db.TransactionManager
	Gate          authorization.Gate
	Logger        logger.Interface
	Members       member.Repository
	Plans         subscription.PlanRepository
	Subscriptions subscription.Repository
	Payments      payment.Repository
	Attendance    attendance.Repository
	Staff         staff.Repository
}

// New starts the clock at 2025-03-10 11:00 in Mexico City.
func New(t testing.TB) *Harness {
	conn := dbtest.Open(t)
	log := logger.NewNopLogger()
	return &Harness{
		DB:            conn,
		Clock:         biztime.NewFixedClock(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)),
		Tx:            db.NewTransactionManager(conn),
		Gate:          authorization.RoleGate{},
		Logger:        log,
		Members:       repository.NewMemberRepository(conn, log),
		Plans:         repository.NewPlanRepository(conn, log),
		Subscriptions: repository.NewSubscriptionRepository(conn, log),
		Payments:      repository.NewPaymentRepository(conn, log),
		Attendance:    repository.NewAttendanceRepository(conn, log),
		Staff:         repository.NewStaffRepository(conn, log),
	}
}

func (h *Harness) Today() time.Time {
	return h.Clock.Today()
}

// Member registers an active member today.
func (h *Harness) Member(t testing.TB, firstName string) *member.Member {
	t.Helper()
	m, err := member.NewMember(member.Profile{
		FirstName:        firstName,
		LastNamePaternal: "Pérez",
	}, member.Policy{Today: h.Today()}, h.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, h.Members.Create(context.Background(), m))
	return m
}

func (h *Harness) Plan(t testing.TB, name string, cents int64, days int) *subscription.Plan {
	t.Helper()
	p, err := subscription.NewPlan(name, "", sharedvo.NewMoney(cents), days, h.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, h.Plans.Create(context.Background(), p))
	return p
}

// Subscription stores a subscription sold on start without any payment,
// bypassing the use cases so tests can place it anywhere in time.
func (h *Harness) Subscription(t testing.TB, m *member.Member, p *subscription.Plan, start time.Time) *subscription.Subscription {
	t.Helper()
	s, err := subscription.NewSubscription(m.ID(), p, start, start, 36500, "", h.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, h.Subscriptions.Create(context.Background(), s))
	return s
}

// Reload fetches the stored state of a subscription.
func (h *Harness) Reload(t testing.TB, id uint) *subscription.Subscription {
	t.Helper()
	s, err := h.Subscriptions.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

// Pay stores a payment on day and refreshes the subscription's paid total
// the way the ledger does.
func (h *Harness) Pay(t testing.TB, s *subscription.Subscription, cents int64, day time.Time, method paymentvo.PaymentMethod) *payment.Payment {
	t.Helper()
	ctx := context.Background()
	p, err := payment.NewPayment(s.ID(), s.MemberID(), payment.Entry{
		Amount:      sharedvo.NewMoney(cents),
		PaymentDate: day,
		Method:      method,
	}, h.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, h.Payments.Create(ctx, p))

	total, err := h.Payments.SumForSubscription(ctx, s.ID())
	require.NoError(t, err)
	s.ApplyPaymentTotal(total, h.Clock.Now())
	require.NoError(t, h.Subscriptions.Update(ctx, s))
	return p
}

// Visit stores a completed visit of minutes on day, checked in at 18:00.
func (h *Harness) Visit(t testing.TB, m *member.Member, day time.Time, minutes int) *attendance.Attendance {
	t.Helper()
	ctx := context.Background()
	in := time.Date(day.Year(), day.Month(), day.Day(), 18, 0, 0, 0, biztime.Location())
	a, err := attendance.NewCheckIn(m.ID(), nil, in, "")
	require.NoError(t, err)
	require.NoError(t, a.CheckOut(in.Add(time.Duration(minutes)*time.Minute), ""))
	require.NoError(t, h.Attendance.Create(ctx, a))
	return a
}
