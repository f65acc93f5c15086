package models

import (
	"time"

	"f3manager/internal/shared/constants"
)

// StaffUserModel represents a staff account row
type StaffUserModel struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex:uk_staff_username;not null;size:50"`
	Email        string `gorm:"uniqueIndex:uk_staff_email;not null;size:255"`
	FullName     string `gorm:"size:100"`
	Role         string `gorm:"not null;size:20;default:operator"`
	PasswordHash string `gorm:"not null;size:255"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (StaffUserModel) TableName() string {
	return constants.TableStaffUsers
}
