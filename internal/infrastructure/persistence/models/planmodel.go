package models

import (
	"time"

	"f3manager/internal/shared/constants"
)

// PlanModel represents the database persistence model for membership plans
type PlanModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"uniqueIndex:uk_plans_name;not null;size:50"`
	Description  string `gorm:"size:500"`
	PriceCents   int64  `gorm:"not null;default:0"`
	DurationDays int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}
