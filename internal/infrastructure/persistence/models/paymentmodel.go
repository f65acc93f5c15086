package models

import (
	"time"

	"gorm.io/datatypes"

	"f3manager/internal/shared/constants"
)

// PaymentModel represents a payment record row
type PaymentModel struct {
	ID             uint           `gorm:"primaryKey"`
	SubscriptionID uint           `gorm:"not null;index:idx_payments_subscription"`
	MemberID       uint           `gorm:"not null;index:idx_payments_member"`
	AmountCents    int64          `gorm:"not null"`
	PaymentDate    datatypes.Date `gorm:"not null;index:idx_payments_date"`
	PaymentMethod  string         `gorm:"not null;size:20"`
	Reference      string         `gorm:"size:100"`
	Notes          string         `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (PaymentModel) TableName() string {
	return constants.TablePayments
}
