package dto

import (
	"encoding/json"
	"time"

	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
)

type MetricsDTO struct {
	PresentNow          int64 `json:"present_now"`
	TodayVisits         int64 `json:"today_visits"`
	ActiveMembers       int64 `json:"active_members"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
}

type PaymentMetricsDTO struct {
	TodayIncome     json.Number `json:"today_income"`
	TodayPayments   int64       `json:"today_payments"`
	MonthIncome     json.Number `json:"month_income"`
	MonthPayments   int64       `json:"month_payments"`
	PendingBalance  json.Number `json:"pending_balance"`
	PendingAccounts int64       `json:"pending_accounts"`
}

type ExpiringDTO struct {
	SubscriptionID uint   `json:"subscription_id"`
	MemberID       uint   `json:"member_id"`
	MemberName     string `json:"member_name"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	PlanName       string `json:"plan_name"`
	EndDate        string `json:"end_date"`
	DaysRemaining  int    `json:"days_remaining"`
}

func ToExpiringDTOList(
	items []analytics.ExpiringItem,
	members map[uint]*member.Member,
	plans map[uint]*subscription.Plan,
) []ExpiringDTO {
	dtos := make([]ExpiringDTO, 0, len(items))
	for _, item := range items {
		s := item.Subscription
		d := ExpiringDTO{
			SubscriptionID: s.ID(),
			MemberID:       s.MemberID(),
			EndDate:        biztime.FormatDate(s.EndDate()),
			DaysRemaining:  item.DaysRemaining,
		}
		if m := members[s.MemberID()]; m != nil {
			d.MemberName = m.FullName()
			d.Phone = m.Phone()
			d.Email = m.Email()
		}
		if p := plans[s.PlanID()]; p != nil {
			d.PlanName = p.Name()
		}
		dtos = append(dtos, d)
	}
	return dtos
}

type RecentCheckInDTO struct {
	AttendanceID uint       `json:"attendance_id"`
	MemberID     uint       `json:"member_id"`
	MemberName   string     `json:"member_name"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Status       string     `json:"status"`
}

type RecentPaymentDTO struct {
	PaymentID   uint        `json:"payment_id"`
	MemberID    uint        `json:"member_id"`
	MemberName  string      `json:"member_name"`
	PlanName    string      `json:"plan_name,omitempty"`
	Amount      json.Number `json:"amount"`
	Method      string      `json:"payment_method"`
	PaymentDate string      `json:"payment_date"`
	Status      string      `json:"status"`
}

type DailyPointDTO struct {
	Date    string      `json:"date"`
	DayName string      `json:"day_name"`
	Count   int64       `json:"count"`
	Amount  json.Number `json:"amount,omitempty"`
}

// ToAttendanceSeries renders visit counts; amounts are left out.
func ToAttendanceSeries(points []analytics.DailyPoint) []DailyPointDTO {
	dtos := make([]DailyPointDTO, 0, len(points))
	for _, p := range points {
		dtos = append(dtos, DailyPointDTO{
			Date:    biztime.FormatDate(p.Date),
			DayName: p.DayName,
			Count:   p.Count,
		})
	}
	return dtos
}

func ToIncomeSeries(points []analytics.DailyPoint) []DailyPointDTO {
	dtos := make([]DailyPointDTO, 0, len(points))
	for _, p := range points {
		dtos = append(dtos, DailyPointDTO{
			Date:    biztime.FormatDate(p.Date),
			DayName: p.DayName,
			Count:   p.Count,
			Amount:  p.Amount.Number(),
		})
	}
	return dtos
}

type PlanMetricDTO struct {
	PlanID              uint        `json:"plan_id"`
	PlanName            string      `json:"plan_name"`
	Price               json.Number `json:"price"`
	IsActive            bool        `json:"is_active"`
	ActiveSubscriptions int64       `json:"active_subscriptions"`
}

func ToPlanMetricDTOList(counts []analytics.PlanCount) []PlanMetricDTO {
	dtos := make([]PlanMetricDTO, 0, len(counts))
	for _, c := range counts {
		dtos = append(dtos, PlanMetricDTO{
			PlanID:              c.Plan.ID(),
			PlanName:            c.Plan.Name(),
			Price:               c.Plan.Price().Number(),
			IsActive:            c.Plan.IsActive(),
			ActiveSubscriptions: c.ActiveSubscriptions,
		})
	}
	return dtos
}

type SummaryDTO struct {
	Date             string             `json:"date"`
	Metrics          MetricsDTO         `json:"metrics"`
	Payments         PaymentMetricsDTO  `json:"payment_metrics"`
	Expiring         []ExpiringDTO      `json:"expiring_soon"`
	RecentCheckIns   []RecentCheckInDTO `json:"recent_check_ins"`
	RecentPayments   []RecentPaymentDTO `json:"recent_payments"`
	WeeklyAttendance []DailyPointDTO    `json:"weekly_attendance"`
	WeeklyIncome     []DailyPointDTO    `json:"weekly_income"`
	Plans            []PlanMetricDTO    `json:"plan_metrics"`
}
