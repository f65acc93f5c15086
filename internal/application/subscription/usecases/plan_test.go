package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/application/apptest"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/shared/errors"
)

func TestPlanCatalog(t *testing.T) {
	h := apptest.New(t)
	ctx := context.Background()
	create := NewCreatePlanUseCase(h.Plans, h.Gate, h.Clock, h.Logger)
	update := NewUpdatePlanUseCase(h.Plans, h.Subscriptions, h.Tx, h.Gate, h.Clock, h.Logger)
	deactivate := NewDeactivatePlanUseCase(h.Plans, h.Gate, h.Clock, h.Logger)
	del := NewDeletePlanUseCase(h.Plans, h.Subscriptions, h.Tx, h.Gate, h.Logger)
	list := NewListPlansUseCase(h.Plans, h.Logger)
	get := NewGetPlanUseCase(h.Plans, h.Logger)

	_, err := create.Execute(ctx, CreatePlanCommand{Name: "Mensual", Price: sharedvo.NewMoney(50000), DurationDays: 30, Actor: apptest.Operator})
	assert.True(t, errors.IsForbiddenError(err))

	monthly, err := create.Execute(ctx, CreatePlanCommand{
		Name:         "Mensual",
		Description:  "<b>Acceso</b> completo",
		Price:        sharedvo.NewMoney(50000),
		DurationDays: 30,
		Actor:        apptest.Admin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acceso completo", monthly.Description())

	_, err = create.Execute(ctx, CreatePlanCommand{Name: "Mensual", Price: sharedvo.NewMoney(1), DurationDays: 1, Actor: apptest.Admin})
	assert.True(t, errors.IsConflictError(err))

	_, err = create.Execute(ctx, CreatePlanCommand{Name: "Roto", Price: sharedvo.NewMoney(100), DurationDays: -1, Actor: apptest.Admin})
	assert.True(t, errors.IsValidationError(err))

	t.Run("terms are editable while unused", func(t *testing.T) {
		price := sharedvo.NewMoney(55000)
		updated, err := update.Execute(ctx, UpdatePlanCommand{PlanID: monthly.ID(), Price: &price, Actor: apptest.Admin})
		require.NoError(t, err)
		assert.Equal(t, int64(55000), updated.Price().Cents())
	})

	repriced, err := h.Plans.GetByID(ctx, monthly.ID())
	require.NoError(t, err)
	require.NotNil(t, repriced)

	m := h.Member(t, "Ana")
	sold := h.Subscription(t, m, repriced, h.Today())

	t.Run("terms are frozen once sold", func(t *testing.T) {
		days := 31
		_, err := update.Execute(ctx, UpdatePlanCommand{PlanID: monthly.ID(), DurationDays: &days, Actor: apptest.Admin})
		assert.True(t, errors.IsPreconditionFailedError(err))

		name := "Mensual Plus"
		updated, err := update.Execute(ctx, UpdatePlanCommand{PlanID: monthly.ID(), Name: &name, Actor: apptest.Admin})
		require.NoError(t, err)
		assert.Equal(t, "Mensual Plus", updated.Name())
		assert.Equal(t, int64(55000), h.Reload(t, sold.ID()).PlanPrice().Cents())
	})

	t.Run("delete is refused while referenced", func(t *testing.T) {
		assert.True(t, errors.IsConflictError(del.Execute(ctx, monthly.ID(), apptest.Admin)))
	})

	t.Run("deactivate hides it from active listings", func(t *testing.T) {
		require.NoError(t, deactivate.Execute(ctx, monthly.ID(), apptest.Admin))

		active, err := list.Execute(ctx, ListPlansQuery{ActiveOnly: true})
		require.NoError(t, err)
		assert.Equal(t, int64(0), active.Total)

		all, err := list.Execute(ctx, ListPlansQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), all.Total)
	})

	t.Run("unused plan can be deleted", func(t *testing.T) {
		weekly := h.Plan(t, "Semana", 15000, 7)
		require.NoError(t, del.Execute(ctx, weekly.ID(), apptest.Admin))
		_, err := get.Execute(ctx, weekly.ID())
		assert.True(t, errors.IsNotFoundError(err))
	})
}
