package models

import (
	"time"

	"gorm.io/datatypes"

	"f3manager/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
type SubscriptionModel struct {
	ID              uint           `gorm:"primarykey"`
	MemberID        uint           `gorm:"not null;index:idx_subscriptions_member_status,priority:1"`
	PlanID          uint           `gorm:"not null;index:idx_subscriptions_plan"`
	PlanPriceCents  int64          `gorm:"not null"`
	StartDate       datatypes.Date `gorm:"not null"`
	EndDate         datatypes.Date `gorm:"not null;index:idx_subscriptions_end_date"`
	Status          string         `gorm:"not null;size:20;default:active;index:idx_subscriptions_member_status,priority:2"`
	PaymentStatus   string         `gorm:"not null;size:20;default:pending"`
	AmountPaidCents int64          `gorm:"not null;default:0"`
	Notes           string         `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"index:idx_subscriptions_created"`
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
