package models

import (
	"time"

	"gorm.io/datatypes"

	"f3manager/internal/shared/constants"
)

// MemberModel represents the database persistence model for members
type MemberModel struct {
	ID               uint    `gorm:"primarykey"`
	FirstName        string  `gorm:"not null;size:50"`
	LastNamePaternal string  `gorm:"not null;size:50"`
	LastNameMaternal string  `gorm:"size:50"`
	Phone            string  `gorm:"size:20;index:idx_members_phone"`
	Email            *string `gorm:"uniqueIndex:uk_members_email;size:100"`
	BirthDate        *datatypes.Date
	EmergencyContact string         `gorm:"size:100"`
	EmergencyPhone   string         `gorm:"size:20"`
	PhotoURL         string         `gorm:"size:255"`
	IsActive         bool           `gorm:"not null;default:true;index:idx_members_active"`
	RegisteredOn     datatypes.Date `gorm:"not null"`
	CreatedAt        time.Time      `gorm:"index:idx_members_created"`
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (MemberModel) TableName() string {
	return constants.TableMembers
}
