package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/shared/biztime"
)

var planCreatedAt = time.Date(2025, 3, 1, 16, 0, 0, 0, time.UTC)

func TestNewPlan(t *testing.T) {
	p, err := NewPlan("  Monthly ", "30 days", sharedvo.NewMoney(50000), 30, planCreatedAt)
	require.NoError(t, err)
	assert.Equal(t, "Monthly", p.Name())
	assert.True(t, p.IsActive())
	assert.False(t, p.IsPermanent())
}

func TestNewPlan_Validation(t *testing.T) {
	tests := []struct {
		name     string
		planName string
		price    int64
		duration int
		wantErr  error
	}{
		{"empty name", " ", 100, 30, ErrInvalidPlanName},
		{"name too long", "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijx", 100, 30, ErrInvalidPlanName},
		{"negative price", "Day", -1, 1, ErrInvalidPrice},
		{"price over bound", "Gold", sharedvo.MaxPriceCents + 1, 30, ErrInvalidPrice},
		{"negative duration", "Day", 100, -1, ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(tt.planName, "", sharedvo.NewMoney(tt.price), tt.duration, planCreatedAt)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlan_EndDateFor(t *testing.T) {
	start := biztime.NewDate(2025, 3, 1)

	monthly, err := NewPlan("Monthly", "", sharedvo.NewMoney(50000), 30, planCreatedAt)
	require.NoError(t, err)
	assert.Equal(t, biztime.NewDate(2025, 3, 31), monthly.EndDateFor(start, 36500))

	lifetime, err := NewPlan("Lifetime", "", sharedvo.NewMoney(0), 0, planCreatedAt)
	require.NoError(t, err)
	assert.True(t, lifetime.IsPermanent())
	assert.Equal(t, 36500, biztime.DaysBetween(start, lifetime.EndDateFor(start, 36500)))
}

func TestPlan_ApplyPatch(t *testing.T) {
	p, err := NewPlan("Monthly", "", sharedvo.NewMoney(50000), 30, planCreatedAt)
	require.NoError(t, err)

	price := sharedvo.NewMoney(55000)
	assert.True(t, PlanPatch{Price: &price}.ChangesTerms(p))
	same := sharedvo.NewMoney(50000)
	assert.False(t, PlanPatch{Price: &same}.ChangesTerms(p))

	desc := "updated"
	require.NoError(t, p.ApplyPatch(PlanPatch{Description: &desc, Price: &price}, planCreatedAt.Add(time.Hour)))
	assert.Equal(t, "updated", p.Description())
	assert.Equal(t, int64(55000), p.Price().Cents())

	bad := -3
	assert.ErrorIs(t, p.ApplyPatch(PlanPatch{DurationDays: &bad}, planCreatedAt), ErrInvalidDuration)
	assert.Equal(t, 30, p.DurationDays())
}
