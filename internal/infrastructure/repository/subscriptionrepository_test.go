package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/shared/biztime"
)

func TestSubscriptionRepository_RoundTrip(t *testing.T) {
	f := newFixture(t)
	m := f.member(t, "Ana", "")
	plan := f.plan(t, "Mensual", 50000, 30)
	s := f.subscription(t, m, plan, testToday)

	got, err := f.subs.GetByID(ctx, s.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.StartDate().Equal(testToday))
	assert.True(t, got.EndDate().Equal(biztime.AddDays(testToday, 30)))
	assert.Equal(t, int64(50000), got.PlanPrice().Cents())
	assert.Equal(t, vo.StatusActive, got.Status())
	assert.Equal(t, vo.PaymentStatusPending, got.PaymentStatus())
}

func TestSubscriptionRepository_FindCurrentForMember(t *testing.T) {
	f := newFixture(t)
	m := f.member(t, "Ana", "")
	plan := f.plan(t, "Mensual", 50000, 30)
	lapsed := f.subscription(t, m, plan, biztime.AddDays(testToday, -60))
	current := f.subscription(t, m, plan, biztime.AddDays(testToday, -5))

	got, err := f.subs.FindCurrentForMember(ctx, m.ID(), testToday, 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, current.ID(), got.ID())

	none, err := f.subs.FindCurrentForMember(ctx, m.ID(), testToday, current.ID())
	require.NoError(t, err)
	assert.Nil(t, none, "lapsed subscription %d must not count as current", lapsed.ID())
}

func TestSubscriptionRepository_MarkExpiredIsConditional(t *testing.T) {
	f := newFixture(t)
	m := f.member(t, "Ana", "")
	plan := f.plan(t, "Mensual", 50000, 30)
	lapsed := f.subscription(t, m, plan, biztime.AddDays(testToday, -40))
	current := f.subscription(t, m, plan, testToday)

	changed, err := f.subs.MarkExpired(ctx, lapsed.ID(), testToday, testNow)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.subs.MarkExpired(ctx, lapsed.ID(), testToday, testNow)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = f.subs.MarkExpired(ctx, current.ID(), testToday, testNow)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := f.subs.GetByID(ctx, lapsed.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusExpired, got.Status())
}

func TestSubscriptionRepository_ListFiltersByEffectiveStatus(t *testing.T) {
	f := newFixture(t)
	m := f.member(t, "Ana", "")
	plan := f.plan(t, "Mensual", 50000, 30)
	lapsed := f.subscription(t, m, plan, biztime.AddDays(testToday, -40))
	current := f.subscription(t, m, plan, testToday)

	active := vo.StatusActive
	subs, total, err := f.subs.List(ctx, subscription.ListFilter{Status: &active, Today: testToday})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, current.ID(), subs[0].ID())

	expired := vo.StatusExpired
	subs, total, err = f.subs.List(ctx, subscription.ListFilter{Status: &expired, Today: testToday})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, lapsed.ID(), subs[0].ID())

	memberID := m.ID()
	_, total, err = f.subs.List(ctx, subscription.ListFilter{MemberID: &memberID, Today: testToday, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSubscriptionRepository_Aggregates(t *testing.T) {
	f := newFixture(t)
	ana := f.member(t, "Ana", "")
	luis := f.member(t, "Luis", "")
	plan := f.plan(t, "Mensual", 50000, 30)
	f.subscription(t, ana, plan, biztime.AddDays(testToday, -40))
	a2 := f.subscription(t, ana, plan, testToday)
	l1 := f.subscription(t, luis, plan, biztime.AddDays(testToday, -2))

	n, err := f.subs.CountByPlan(ctx, plan.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	current, err := f.subs.ListCurrent(ctx, testToday)
	require.NoError(t, err)
	require.Len(t, current, 2)
	assert.Equal(t, l1.ID(), current[0].ID(), "ordered by end date")

	byMember, err := f.subs.ListCurrentForMembers(ctx, []uint{ana.ID(), luis.ID()}, testToday)
	require.NoError(t, err)
	assert.Equal(t, a2.ID(), byMember[ana.ID()].ID())
	assert.Equal(t, l1.ID(), byMember[luis.ID()].ID())

	ending, err := f.subs.ListEndingBetween(ctx, biztime.AddDays(testToday, -15), testToday)
	require.NoError(t, err)
	assert.Len(t, ending, 1)

	started, err := f.subs.ListStartedBetween(ctx, biztime.AddDays(testToday, -7), testToday)
	require.NoError(t, err)
	assert.Len(t, started, 2)
}

func TestSubscriptionRepository_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	m := f.member(t, "Ana", "")
	plan := f.plan(t, "Mensual", 50000, 30)
	s := f.subscription(t, m, plan, testToday)

	require.NoError(t, s.Cancel(testNow))
	s.SetNotes("baja voluntaria", testNow)
	require.NoError(t, f.subs.Update(ctx, s))

	got, err := f.subs.GetByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, got.Status())
	assert.Equal(t, "baja voluntaria", got.Notes())

	require.NoError(t, f.subs.Delete(ctx, s.ID()))
	assert.Error(t, f.subs.Delete(ctx, s.ID()))
}
