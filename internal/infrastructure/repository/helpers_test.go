package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"f3manager/internal/domain/member"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/infrastructure/database/dbtest"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/logger"
)

var (
	ctx       = context.Background()
	testToday = biztime.NewDate(2025, 3, 10)
	testNow   = time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
)

func init() {
	biztime.MustInit("America/Mexico_City")
}

type fixture struct {
	db      *gorm.DB
	members member.Repository
	plans   subscription.PlanRepository
	subs    subscription.Repository
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.Open(t)
	log := logger.NewNopLogger()
	return &fixture{
		db:      db,
		members: NewMemberRepository(db, log),
		plans:   NewPlanRepository(db, log),
		subs:    NewSubscriptionRepository(db, log),
	}
}

func (f *fixture) member(t *testing.T, first, email string) *member.Member {
	t.Helper()
	m, err := member.NewMember(member.Profile{
		FirstName:        first,
		LastNamePaternal: "Pérez",
		Phone:            "5512345678",
		Email:            email,
	}, member.Policy{Today: testToday, MinimumAge: 12}, testNow)
	require.NoError(t, err)
	require.NoError(t, f.members.Create(ctx, m))
	return m
}

func (f *fixture) plan(t *testing.T, name string, cents int64, days int) *subscription.Plan {
	t.Helper()
	p, err := subscription.NewPlan(name, "", sharedvo.NewMoney(cents), days, testNow)
	require.NoError(t, err)
	require.NoError(t, f.plans.Create(ctx, p))
	return p
}

// subscription creates a subscription as if it had been sold on start.
func (f *fixture) subscription(t *testing.T, m *member.Member, p *subscription.Plan, start time.Time) *subscription.Subscription {
	t.Helper()
	s, err := subscription.NewSubscription(m.ID(), p, start, start, 36500, "", testNow)
	require.NoError(t, err)
	require.NoError(t, f.subs.Create(ctx, s))
	return s
}
