package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/payment"
	paymentvo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/shared/biztime"
)

// 2025-03-01 is a Saturday.
var (
	today = biztime.NewDate(2025, 3, 1)
	stamp = time.Date(2025, 3, 1, 16, 0, 0, 0, time.UTC)
)

func sub(t *testing.T, id, memberID, planID uint, start, end time.Time, status vo.SubscriptionStatus) *subscription.Subscription {
	t.Helper()
	s, err := subscription.ReconstructSubscription(id, memberID, planID, sharedvo.NewMoney(50000),
		start, end, status, vo.PaymentStatusPaid, sharedvo.NewMoney(50000), "", stamp, stamp)
	require.NoError(t, err)
	return s
}

func pay(t *testing.T, id, subID uint, cents int64, date time.Time, method paymentvo.PaymentMethod) *payment.Payment {
	t.Helper()
	p, err := payment.ReconstructPayment(id, subID, 1, sharedvo.NewMoney(cents), date, method, "", "", stamp, stamp)
	require.NoError(t, err)
	return p
}

func visit(t *testing.T, id, memberID uint, date time.Time, minutes *int) *attendance.Attendance {
	t.Helper()
	in := date.Add(15 * time.Hour)
	var out *time.Time
	if minutes != nil {
		o := in.Add(time.Duration(*minutes) * time.Minute)
		out = &o
	}
	a, err := attendance.ReconstructAttendance(id, memberID, nil, in, out, date, minutes, "", in)
	require.NoError(t, err)
	return a
}

func intPtr(v int) *int { return &v }

func TestWeekdaysFor(t *testing.T) {
	assert.Equal(t, "Sábado", WeekdaysFor("es").Name(today))
	assert.Equal(t, "Sábado", WeekdaysFor("es-MX").Name(today))
	assert.Equal(t, "Saturday", WeekdaysFor("en-US").Name(today))
	assert.Equal(t, "Sábado", WeekdaysFor("not a locale").Name(today))
	assert.Equal(t, "Miércoles", WeekdaysFor("es").Name(biztime.NewDate(2025, 2, 26)))
}

func TestBuildDailySeries_ZeroFilled(t *testing.T) {
	from, to := LastNDays(today, 7)
	assert.Equal(t, biztime.NewDate(2025, 2, 23), from)

	facts := []DailyFact{
		{Date: biztime.NewDate(2025, 2, 24), Count: 1, Amount: sharedvo.NewMoney(100)},
		{Date: biztime.NewDate(2025, 2, 24), Count: 1, Amount: sharedvo.NewMoney(250)},
		{Date: today, Count: 1, Amount: sharedvo.Zero()},
		{Date: biztime.NewDate(2025, 2, 1), Count: 9, Amount: sharedvo.NewMoney(1)},
	}
	points := BuildDailySeries(from, to, WeekdaysFor("es"), facts)

	require.Len(t, points, 7)
	assert.Equal(t, "Domingo", points[0].DayName)
	assert.Equal(t, int64(0), points[0].Count)
	assert.Equal(t, int64(2), points[1].Count)
	assert.Equal(t, int64(350), points[1].Amount.Cents())
	assert.Equal(t, today, points[6].Date)
	assert.Equal(t, int64(1), points[6].Count)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Date.Before(points[i].Date))
	}
}

func TestBuildDailySeries_EmptyRange(t *testing.T) {
	assert.Empty(t, BuildDailySeries(today, biztime.AddDays(today, -1), WeekdaysFor("es"), nil))
}

func TestClassifyHealth(t *testing.T) {
	assert.Equal(t, HealthExpired, ClassifyHealth(nil, today))
	assert.Equal(t, HealthActive, ClassifyHealth(sub(t, 1, 1, 1, today, biztime.AddDays(today, 8), vo.StatusActive), today))
	assert.Equal(t, HealthExpiringSoon, ClassifyHealth(sub(t, 2, 1, 1, today, biztime.AddDays(today, 7), vo.StatusActive), today))
	assert.Equal(t, HealthExpiringSoon, ClassifyHealth(sub(t, 3, 1, 1, today, today, vo.StatusActive), today))
	assert.Equal(t, HealthExpired, ClassifyHealth(sub(t, 4, 1, 1, today, biztime.AddDays(today, -1), vo.StatusActive), today))
	assert.Equal(t, HealthExpired, ClassifyHealth(sub(t, 5, 1, 1, today, biztime.AddDays(today, 20), vo.StatusCancelled), today))
}

func TestSelectExpiringSoon(t *testing.T) {
	subs := []*subscription.Subscription{
		sub(t, 1, 1, 1, today, biztime.AddDays(today, 5), vo.StatusActive),
		sub(t, 2, 2, 1, today, biztime.AddDays(today, 1), vo.StatusActive),
		sub(t, 3, 3, 1, today, biztime.AddDays(today, 8), vo.StatusActive),
		sub(t, 4, 4, 1, today, biztime.AddDays(today, -1), vo.StatusActive),
		sub(t, 5, 5, 1, today, biztime.AddDays(today, 2), vo.StatusCancelled),
		sub(t, 6, 6, 1, today, today, vo.StatusActive),
	}
	items := SelectExpiringSoon(subs, today, 7)

	require.Len(t, items, 3)
	assert.Equal(t, uint(6), items[0].Subscription.ID())
	assert.Equal(t, 0, items[0].DaysRemaining)
	assert.Equal(t, uint(2), items[1].Subscription.ID())
	assert.Equal(t, uint(1), items[2].Subscription.ID())
	assert.Equal(t, 5, items[2].DaysRemaining)
}

func TestComputeRetention_ActiveShare(t *testing.T) {
	var subs []*subscription.Subscription
	for i := uint(1); i <= 6; i++ {
		subs = append(subs, sub(t, i, i, 1, biztime.AddDays(today, -3), biztime.AddDays(today, 27), vo.StatusActive))
	}
	r := ComputeRetention(10, subs, biztime.AddDays(today, -30), today, today)
	assert.Equal(t, int64(6), r.ActiveMembers)
	assert.Equal(t, 60.0, r.RetentionRate)

	empty := ComputeRetention(0, nil, biztime.AddDays(today, -30), today, today)
	assert.Equal(t, 0.0, empty.RetentionRate)
	assert.Equal(t, 0.0, empty.RenewalRate)
}

func TestComputeRetention_Renewal(t *testing.T) {
	from := biztime.AddDays(today, -30)
	subs := []*subscription.Subscription{
		// member 1 lapsed in the period and renewed
		sub(t, 1, 1, 1, biztime.AddDays(today, -40), biztime.AddDays(today, -10), vo.StatusExpired),
		sub(t, 2, 1, 1, biztime.AddDays(today, -9), biztime.AddDays(today, 21), vo.StatusActive),
		// member 2 lapsed in the period, read lazily, no renewal
		sub(t, 3, 2, 1, biztime.AddDays(today, -35), biztime.AddDays(today, -5), vo.StatusActive),
		// member 3 lapsed before the period
		sub(t, 4, 3, 1, biztime.AddDays(today, -90), biztime.AddDays(today, -60), vo.StatusExpired),
		// member 4 expired twice in the period, counted once
		sub(t, 5, 4, 1, biztime.AddDays(today, -50), biztime.AddDays(today, -20), vo.StatusExpired),
		sub(t, 6, 4, 1, biztime.AddDays(today, -19), biztime.AddDays(today, -2), vo.StatusExpired),
	}
	r := ComputeRetention(4, subs, from, today, today)

	assert.Equal(t, int64(3), r.ExpiredInPeriod)
	assert.Equal(t, int64(1), r.Renewed)
	assert.Equal(t, 33.3, r.RenewalRate)
	assert.Equal(t, 25.0, r.RetentionRate)
}

func TestSummarizeByMethod(t *testing.T) {
	payments := []*payment.Payment{
		pay(t, 1, 1, 10, today, paymentvo.PaymentMethodCard),
		pay(t, 2, 1, 20, today, paymentvo.PaymentMethodCash),
		pay(t, 3, 2, 30, today, paymentvo.PaymentMethodCash),
	}
	totals := SummarizeByMethod(payments)

	require.Len(t, totals, 2)
	assert.Equal(t, paymentvo.PaymentMethodCash, totals[0].Method)
	assert.Equal(t, int64(2), totals[0].Count)
	assert.Equal(t, int64(50), totals[0].Total.Cents())
	assert.Equal(t, paymentvo.PaymentMethodCard, totals[1].Method)
	assert.Equal(t, int64(60), TotalIncome(payments).Cents())
}

func TestSummarizeByMethod_ExactCents(t *testing.T) {
	var payments []*payment.Payment
	for i := uint(1); i <= 1000; i++ {
		payments = append(payments, pay(t, i, 1, 1, today, paymentvo.PaymentMethodCash))
	}
	assert.Equal(t, "10.00", SummarizeByMethod(payments)[0].Total.String())
}

func TestIncomeByPlan(t *testing.T) {
	monthly, err := subscription.ReconstructPlan(1, "Monthly", "", sharedvo.NewMoney(50000), 30, true, stamp, stamp)
	require.NoError(t, err)
	weekly, err := subscription.ReconstructPlan(2, "Weekly", "", sharedvo.NewMoney(15000), 7, true, stamp, stamp)
	require.NoError(t, err)

	subs := map[uint]*subscription.Subscription{
		10: sub(t, 10, 1, 1, today, biztime.AddDays(today, 30), vo.StatusActive),
		11: sub(t, 11, 2, 2, today, biztime.AddDays(today, 7), vo.StatusActive),
	}
	plans := map[uint]*subscription.Plan{1: monthly, 2: weekly}
	payments := []*payment.Payment{
		pay(t, 1, 10, 50000, today, paymentvo.PaymentMethodCash),
		pay(t, 2, 11, 10000, today, paymentvo.PaymentMethodCash),
		pay(t, 3, 11, 5001, today, paymentvo.PaymentMethodCash),
		pay(t, 4, 99, 7000, today, paymentvo.PaymentMethodCash),
	}
	rows := IncomeByPlan(payments, subs, plans)

	require.Len(t, rows, 2)
	assert.Equal(t, "Monthly", rows[0].PlanName)
	assert.Equal(t, "Weekly", rows[1].PlanName)
	assert.Equal(t, int64(2), rows[1].Count)
	assert.Equal(t, int64(15001), rows[1].Total.Cents())
	assert.Equal(t, int64(7501), rows[1].Average.Cents())
}

func TestPendingBalance(t *testing.T) {
	partial, err := subscription.ReconstructSubscription(1, 1, 1, sharedvo.NewMoney(50000), today, biztime.AddDays(today, 30),
		vo.StatusActive, vo.PaymentStatusPartial, sharedvo.NewMoney(20000), "", stamp, stamp)
	require.NoError(t, err)
	pending, err := subscription.ReconstructSubscription(2, 2, 1, sharedvo.NewMoney(50000), today, biztime.AddDays(today, 30),
		vo.StatusActive, vo.PaymentStatusPending, sharedvo.Zero(), "", stamp, stamp)
	require.NoError(t, err)
	cancelled, err := subscription.ReconstructSubscription(3, 3, 1, sharedvo.NewMoney(50000), today, biztime.AddDays(today, 30),
		vo.StatusCancelled, vo.PaymentStatusPending, sharedvo.Zero(), "", stamp, stamp)
	require.NoError(t, err)
	paid := sub(t, 4, 4, 1, today, biztime.AddDays(today, 30), vo.StatusActive)

	total := PendingBalance([]*subscription.Subscription{partial, pending, cancelled, paid})
	assert.Equal(t, int64(80000), total.Cents())
}

func TestComputeDailyStats(t *testing.T) {
	records := []*attendance.Attendance{
		visit(t, 1, 1, today, intPtr(45)),
		visit(t, 2, 2, today, intPtr(60)),
		visit(t, 3, 1, today, nil),
		visit(t, 4, 3, biztime.AddDays(today, -1), intPtr(10)),
	}

	stats := ComputeDailyStats(today, today, records)
	assert.Equal(t, int64(3), stats.TotalVisits)
	assert.Equal(t, int64(2), stats.UniqueMembers)
	require.NotNil(t, stats.AverageDurationMinutes)
	assert.Equal(t, 52.5, *stats.AverageDurationMinutes)
	require.NotNil(t, stats.CurrentlyPresent)
	assert.Equal(t, int64(1), *stats.CurrentlyPresent)

	past := ComputeDailyStats(biztime.AddDays(today, -1), today, records)
	assert.Equal(t, int64(1), past.TotalVisits)
	assert.Nil(t, past.CurrentlyPresent)

	none := ComputeDailyStats(biztime.AddDays(today, -2), today, records)
	assert.Nil(t, none.AverageDurationMinutes)
}

func TestTopMembers(t *testing.T) {
	records := []*attendance.Attendance{
		visit(t, 1, 5, today, nil),
		visit(t, 2, 3, today, nil),
		visit(t, 3, 5, biztime.AddDays(today, -1), nil),
		visit(t, 4, 2, today, nil),
	}
	top := TopMembers(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, MemberVisits{MemberID: 5, Visits: 2}, top[0])
	assert.Equal(t, MemberVisits{MemberID: 2, Visits: 1}, top[1])
}

func TestCountActiveByPlan(t *testing.T) {
	a, err := subscription.ReconstructPlan(1, "Anual", "", sharedvo.NewMoney(1), 365, true, stamp, stamp)
	require.NoError(t, err)
	b, err := subscription.ReconstructPlan(2, "Mensual", "", sharedvo.NewMoney(1), 30, true, stamp, stamp)
	require.NoError(t, err)
	c, err := subscription.ReconstructPlan(3, "Visita", "", sharedvo.NewMoney(1), 1, true, stamp, stamp)
	require.NoError(t, err)

	subs := []*subscription.Subscription{
		sub(t, 1, 1, 2, today, biztime.AddDays(today, 30), vo.StatusActive),
		sub(t, 2, 2, 2, today, biztime.AddDays(today, 30), vo.StatusActive),
		sub(t, 3, 3, 1, today, biztime.AddDays(today, 30), vo.StatusActive),
		sub(t, 4, 4, 1, today, biztime.AddDays(today, -3), vo.StatusActive),
	}
	counts := CountActiveByPlan([]*subscription.Plan{a, b, c}, subs, today)

	require.Len(t, counts, 3)
	assert.Equal(t, "Mensual", counts[0].Plan.Name())
	assert.Equal(t, int64(2), counts[0].ActiveSubscriptions)
	assert.Equal(t, "Anual", counts[1].Plan.Name())
	assert.Equal(t, int64(1), counts[1].ActiveSubscriptions)
	assert.Equal(t, int64(0), counts[2].ActiveSubscriptions)
}

func TestPercentAndGrowth(t *testing.T) {
	assert.Equal(t, 60.0, Percent(6, 10))
	assert.Equal(t, 66.7, Percent(2, 3))
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 50.0, Growth(150, 100))
	assert.Equal(t, -25.0, Growth(75, 100))
	assert.Equal(t, 0.0, Growth(10, 0))
	assert.Equal(t, 1.4, Ratio(10, 7))
}
