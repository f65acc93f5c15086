package models

import (
	"time"

	"gorm.io/datatypes"

	"f3manager/internal/shared/constants"
)

// AttendanceModel represents one gym visit
type AttendanceModel struct {
	ID              uint           `gorm:"primaryKey"`
	MemberID        uint           `gorm:"not null;index:idx_attendance_member_open,priority:1"`
	SubscriptionID  *uint          `gorm:"index:idx_attendance_subscription"`
	CheckInTime     time.Time      `gorm:"not null;index:idx_attendance_check_in"`
	CheckOutTime    *time.Time     `gorm:"index:idx_attendance_member_open,priority:2"`
	Date            datatypes.Date `gorm:"not null;index:idx_attendance_date"`
	DurationMinutes *int
	Notes           string `gorm:"type:text"`
	CreatedAt       time.Time
}

func (AttendanceModel) TableName() string {
	return constants.TableAttendance
}
