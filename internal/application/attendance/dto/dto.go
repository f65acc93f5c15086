package dto

import (
	"time"

	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/member"
	"f3manager/internal/shared/biztime"
)

type AttendanceDTO struct {
	ID              uint       `json:"id"`
	MemberID        uint       `json:"member_id"`
	MemberName      string     `json:"member_name,omitempty"`
	SubscriptionID  *uint      `json:"subscription_id"`
	Date            string     `json:"date"`
	CheckInTime     time.Time  `json:"check_in_time"`
	CheckOutTime    *time.Time `json:"check_out_time"`
	DurationMinutes *int       `json:"duration_minutes"`
	IsOpen          bool       `json:"is_open"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func ToAttendanceDTO(a *attendance.Attendance, m *member.Member) *AttendanceDTO {
	if a == nil {
		return nil
	}
	d := &AttendanceDTO{
		ID:              a.ID(),
		MemberID:        a.MemberID(),
		SubscriptionID:  a.SubscriptionID(),
		Date:            biztime.FormatDate(a.Date()),
		CheckInTime:     a.CheckInTime(),
		CheckOutTime:    a.CheckOutTime(),
		DurationMinutes: a.DurationMinutes(),
		IsOpen:          a.IsOpen(),
		Notes:           a.Notes(),
		CreatedAt:       a.CreatedAt(),
	}
	if m != nil {
		d.MemberName = m.FullName()
	}
	return d
}

func ToAttendanceDTOList(records []*attendance.Attendance, members map[uint]*member.Member) []*AttendanceDTO {
	dtos := make([]*AttendanceDTO, 0, len(records))
	for _, a := range records {
		if a != nil {
			dtos = append(dtos, ToAttendanceDTO(a, members[a.MemberID()]))
		}
	}
	return dtos
}

type DailyStatsDTO struct {
	Date                   string   `json:"date"`
	TotalVisits            int64    `json:"total_visits"`
	UniqueMembers          int64    `json:"unique_members"`
	AverageDurationMinutes *float64 `json:"average_duration_minutes"`
	CurrentlyPresent       *int64   `json:"currently_present,omitempty"`
}

func ToDailyStatsDTO(s analytics.DailyStats) *DailyStatsDTO {
	return &DailyStatsDTO{
		Date:                   biztime.FormatDate(s.Date),
		TotalVisits:            s.TotalVisits,
		UniqueMembers:          s.UniqueMembers,
		AverageDurationMinutes: s.AverageDurationMinutes,
		CurrentlyPresent:       s.CurrentlyPresent,
	}
}
