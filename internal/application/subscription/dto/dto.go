package dto

import (
	"encoding/json"
	"time"

	"f3manager/internal/domain/member"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
)

type PlanDTO struct {
	ID           uint        `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Price        json.Number `json:"price"`
	DurationDays int         `json:"duration_days"`
	IsPermanent  bool        `json:"is_permanent"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func ToPlanDTO(p *subscription.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		ID:           p.ID(),
		Name:         p.Name(),
		Description:  p.Description(),
		Price:        p.Price().Number(),
		DurationDays: p.DurationDays(),
		IsPermanent:  p.IsPermanent(),
		IsActive:     p.IsActive(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func ToPlanDTOList(plans []*subscription.Plan) []*PlanDTO {
	dtos := make([]*PlanDTO, 0, len(plans))
	for _, p := range plans {
		if p != nil {
			dtos = append(dtos, ToPlanDTO(p))
		}
	}
	return dtos
}

// SubscriptionDTO renders a subscription as seen on a given day. Status is
// the effective status, so a lapsed row never reads as active.
type SubscriptionDTO struct {
	ID            uint        `json:"id"`
	MemberID      uint        `json:"member_id"`
	MemberName    string      `json:"member_name,omitempty"`
	PlanID        uint        `json:"plan_id"`
	PlanName      string      `json:"plan_name,omitempty"`
	PlanPrice     json.Number `json:"plan_price"`
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"payment_status"`
	AmountPaid    json.Number `json:"amount_paid"`
	Balance       json.Number `json:"balance"`
	DaysRemaining int         `json:"days_remaining"`
	Notes         string      `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func ToSubscriptionDTO(s *subscription.Subscription, plan *subscription.Plan, m *member.Member, today time.Time) *SubscriptionDTO {
	if s == nil {
		return nil
	}
	remaining := s.DaysRemaining(today)
	if remaining < 0 {
		remaining = 0
	}
	d := &SubscriptionDTO{
		ID:            s.ID(),
		MemberID:      s.MemberID(),
		PlanID:        s.PlanID(),
		PlanPrice:     s.PlanPrice().Number(),
		StartDate:     biztime.FormatDate(s.StartDate()),
		EndDate:       biztime.FormatDate(s.EndDate()),
		Status:        s.EffectiveStatus(today).String(),
		PaymentStatus: s.PaymentStatus().String(),
		AmountPaid:    s.AmountPaid().Number(),
		Balance:       s.Balance().Number(),
		DaysRemaining: remaining,
		Notes:         s.Notes(),
		CreatedAt:     s.CreatedAt(),
		UpdatedAt:     s.UpdatedAt(),
	}
	if plan != nil {
		d.PlanName = plan.Name()
	}
	if m != nil {
		d.MemberName = m.FullName()
	}
	return d
}

// ToSubscriptionDTOList renders subs, resolving names from the lookups.
// Missing entries leave the name empty.
func ToSubscriptionDTOList(
	subs []*subscription.Subscription,
	plans map[uint]*subscription.Plan,
	members map[uint]*member.Member,
	today time.Time,
) []*SubscriptionDTO {
	dtos := make([]*SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		if s != nil {
			dtos = append(dtos, ToSubscriptionDTO(s, plans[s.PlanID()], members[s.MemberID()], today))
		}
	}
	return dtos
}
