package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/errors"
)

func TestPlanRepository_NameIsUniqueAndCaseSensitive(t *testing.T) {
	f := newFixture(t)
	f.plan(t, "Mensual", 50000, 30)

	dup, err := subscription.NewPlan("Mensual", "", sharedvo.NewMoney(1), 1, testNow)
	require.NoError(t, err)
	assert.True(t, errors.IsConflictError(f.plans.Create(ctx, dup)))

	got, err := f.plans.GetByName(ctx, "mensual")
	require.NoError(t, err)
	assert.Nil(t, got)

	lower, err := subscription.NewPlan("mensual", "", sharedvo.NewMoney(1), 1, testNow)
	require.NoError(t, err)
	assert.NoError(t, f.plans.Create(ctx, lower))
}

func TestPlanRepository_ListAndUpdate(t *testing.T) {
	f := newFixture(t)
	yearly := f.plan(t, "Anual", 500000, 365)
	monthly := f.plan(t, "Mensual", 50000, 30)

	monthly.Deactivate(testNow)
	require.NoError(t, f.plans.Update(ctx, monthly))

	all, total, err := f.plans.List(ctx, subscription.PlanListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Anual", all[0].Name())

	active, total, err := f.plans.List(ctx, subscription.PlanListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, yearly.ID(), active[0].ID())

	byID, err := f.plans.GetByIDs(ctx, []uint{yearly.ID(), monthly.ID()})
	require.NoError(t, err)
	assert.Len(t, byID, 2)
	assert.False(t, byID[monthly.ID()].IsActive())
}

func TestPlanRepository_Delete(t *testing.T) {
	f := newFixture(t)
	p := f.plan(t, "Semanal", 15000, 7)

	require.NoError(t, f.plans.Delete(ctx, p.ID()))
	assert.True(t, errors.IsNotFoundError(f.plans.Delete(ctx, p.ID())))
}
