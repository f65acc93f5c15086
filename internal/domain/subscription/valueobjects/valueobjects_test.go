package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sharedvo "f3manager/internal/domain/shared/valueobjects"
)

func TestSubscriptionStatus_Transitions(t *testing.T) {
	assert.True(t, StatusActive.CanTransitionTo(StatusExpired))
	assert.True(t, StatusActive.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusExpired.CanTransitionTo(StatusActive))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusExpired))
	assert.False(t, StatusActive.CanTransitionTo(StatusActive))
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestDerivePaymentStatus(t *testing.T) {
	price := sharedvo.NewMoney(50000)
	tests := []struct {
		name string
		paid int64
		want PaymentStatus
	}{
		{"nothing paid", 0, PaymentStatusPending},
		{"partial", 20000, PaymentStatusPartial},
		{"exact", 50000, PaymentStatusPaid},
		{"overpaid", 60000, PaymentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePaymentStatus(sharedvo.NewMoney(tt.paid), price))
		})
	}

	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(sharedvo.Zero(), sharedvo.Zero()))
	assert.True(t, PaymentStatusPartial.IsOutstanding())
	assert.False(t, PaymentStatusPaid.IsOutstanding())
}
