package valueobjects

import (
	sharedvo "f3manager/internal/domain/shared/valueobjects"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial || s == PaymentStatusPaid
}

// IsOutstanding reports whether money is still owed.
func (s PaymentStatus) IsOutstanding() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial
}

// DerivePaymentStatus classifies the cumulative amount paid against the price.
func DerivePaymentStatus(amountPaid, price sharedvo.Money) PaymentStatus {
	switch {
	case amountPaid.GreaterOrEqual(price):
		return PaymentStatusPaid
	case amountPaid.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusPending
	}
}
