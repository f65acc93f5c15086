package dto

import (
	"encoding/json"

	paymentdto "f3manager/internal/application/payment/dto"
	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/member"
)

type PeriodDTO struct {
	Name      string `json:"period,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

type PlanIncomeDTO struct {
	PlanID   uint        `json:"plan_id"`
	PlanName string      `json:"plan_name"`
	Count    int64       `json:"count"`
	Total    json.Number `json:"total"`
	Average  json.Number `json:"average"`
}

func ToPlanIncomeDTOList(rows []analytics.PlanIncome) []PlanIncomeDTO {
	dtos := make([]PlanIncomeDTO, 0, len(rows))
	for _, r := range rows {
		dtos = append(dtos, PlanIncomeDTO{
			PlanID:   r.PlanID,
			PlanName: r.PlanName,
			Count:    r.Count,
			Total:    r.Total.Number(),
			Average:  r.Average.Number(),
		})
	}
	return dtos
}

type IncomeDTO struct {
	Total        json.Number                 `json:"total"`
	PaymentCount int64                       `json:"payment_count"`
	ByPlan       []PlanIncomeDTO             `json:"by_plan"`
	ByMethod     []paymentdto.MethodTotalDTO `json:"by_payment_method"`
}

type TopMemberDTO struct {
	MemberID   uint   `json:"id"`
	FullName   string `json:"full_name"`
	VisitCount int64  `json:"visit_count"`
}

func ToTopMemberDTOList(ranked []analytics.MemberVisits, members map[uint]*member.Member) []TopMemberDTO {
	dtos := make([]TopMemberDTO, 0, len(ranked))
	for _, r := range ranked {
		d := TopMemberDTO{MemberID: r.MemberID, VisitCount: r.Visits}
		if m := members[r.MemberID]; m != nil {
			d.FullName = m.FullName()
		}
		dtos = append(dtos, d)
	}
	return dtos
}

type AttendanceDTO struct {
	Total      int64          `json:"total"`
	DailyAvg   float64        `json:"daily_avg"`
	TopMembers []TopMemberDTO `json:"top_members"`
}

type RetentionDTO struct {
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalMembers    int64   `json:"total_members"`
	ActiveMembers   int64   `json:"active_members"`
	RetentionRate   float64 `json:"retention_rate"`
	ExpiredInPeriod int64   `json:"expired_in_period"`
	Renewed         int64   `json:"renewed"`
	RenewalRate     float64 `json:"renewal_rate"`
}

func ToRetentionDTO(period PeriodDTO, r analytics.Retention) RetentionDTO {
	return RetentionDTO{
		StartDate:       period.StartDate,
		EndDate:         period.EndDate,
		TotalMembers:    r.TotalMembers,
		ActiveMembers:   r.ActiveMembers,
		RetentionRate:   r.RetentionRate,
		ExpiredInPeriod: r.ExpiredInPeriod,
		Renewed:         r.Renewed,
		RenewalRate:     r.RenewalRate,
	}
}

type SummaryDTO struct {
	PeriodDTO
	Income     IncomeDTO     `json:"income"`
	NewMembers int64         `json:"new_members"`
	Attendance AttendanceDTO `json:"attendance"`
	Retention  RetentionDTO  `json:"retention"`
}

// MonthFiguresDTO holds the totals of one month window.
type MonthFiguresDTO struct {
	StartDate        string      `json:"start_date"`
	EndDate          string      `json:"end_date"`
	Income           json.Number `json:"income"`
	Visits           int64       `json:"visits"`
	NewMembers       int64       `json:"new_members"`
	NewSubscriptions int64       `json:"new_subscriptions"`
}

// GrowthDTO holds percentage changes against the previous month.
type GrowthDTO struct {
	Income           float64 `json:"income"`
	Visits           float64 `json:"visits"`
	NewMembers       float64 `json:"new_members"`
	NewSubscriptions float64 `json:"new_subscriptions"`
}

type MonthlyComparisonDTO struct {
	Current  MonthFiguresDTO `json:"current_month"`
	Previous MonthFiguresDTO `json:"previous_month"`
	Growth   GrowthDTO       `json:"growth"`
}
