package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/application/apptest"
	subscriptionUsecases "f3manager/internal/application/subscription/usecases"
)

const plansYAML = `
plans:
  - name: Mensual
    description: Acceso ilimitado
    price: "500.00"
    duration_days: 30
  - name: Visita
    price: "50"
    duration_days: 1
  - name: Permanente
    price: "9000"
    duration_days: 0
`

func TestLoadPlans(t *testing.T) {
	seeds, err := LoadPlans(strings.NewReader(plansYAML))
	require.NoError(t, err)
	require.Len(t, seeds, 3)

	assert.Equal(t, PlanSeed{Name: "Mensual", Description: "Acceso ilimitado", Price: "500.00", DurationDays: 30}, seeds[0])
	assert.Equal(t, 0, seeds[2].DurationDays)
}

func TestLoadPlans_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"unknown field", "plans:\n  - name: Mensual\n    cost: 10\n"},
		{"missing name", "plans:\n  - price: \"10\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPlans(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func newTestSeeder(h *apptest.Harness) *PlanSeeder {
	return NewPlanSeeder(
		subscriptionUsecases.NewCreatePlanUseCase(h.Plans, h.Gate, h.Clock, h.Logger),
		subscriptionUsecases.NewListPlansUseCase(h.Plans, h.Logger),
		h.Logger,
	)
}

func TestPlanSeeder_SkipsExistingNames(t *testing.T) {
	h := apptest.New(t)
	h.Plan(t, "mensual", 45000, 30)

	seeds, err := LoadPlans(strings.NewReader(plansYAML))
	require.NoError(t, err)

	result, err := newTestSeeder(h).Seed(context.Background(), seeds)
	require.NoError(t, err)
	assert.Equal(t, []string{"Visita", "Permanente"}, result.Created)
	assert.Equal(t, []string{"Mensual"}, result.Skipped)

	// Seeding twice is a no-op.
	result, err = newTestSeeder(h).Seed(context.Background(), seeds)
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Len(t, result.Skipped, 3)
}

func TestPlanSeeder_RejectsBadPrice(t *testing.T) {
	h := apptest.New(t)

	result, err := newTestSeeder(h).Seed(context.Background(), []PlanSeed{
		{Name: "Semanal", Price: "150", DurationDays: 7},
		{Name: "Quincenal", Price: "12.345", DurationDays: 15},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quincenal")
	assert.Equal(t, []string{"Semanal"}, result.Created)
}
