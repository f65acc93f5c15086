package dto

import (
	"encoding/json"
	"time"

	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/payment"
	"f3manager/internal/shared/biztime"
)

type PaymentDTO struct {
	ID             uint        `json:"id"`
	SubscriptionID uint        `json:"subscription_id"`
	MemberID       uint        `json:"member_id"`
	MemberName     string      `json:"member_name,omitempty"`
	Amount         json.Number `json:"amount"`
	PaymentDate    string      `json:"payment_date"`
	Method         string      `json:"payment_method"`
	Reference      string      `json:"reference,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func ToPaymentDTO(p *payment.Payment) *PaymentDTO {
	if p == nil {
		return nil
	}
	return &PaymentDTO{
		ID:             p.ID(),
		SubscriptionID: p.SubscriptionID(),
		MemberID:       p.MemberID(),
		Amount:         p.Amount().Number(),
		PaymentDate:    biztime.FormatDate(p.PaymentDate()),
		Method:         p.Method().String(),
		Reference:      p.Reference(),
		Notes:          p.Notes(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func ToPaymentDTOList(payments []*payment.Payment) []*PaymentDTO {
	dtos := make([]*PaymentDTO, 0, len(payments))
	for _, p := range payments {
		if p != nil {
			dtos = append(dtos, ToPaymentDTO(p))
		}
	}
	return dtos
}

type MethodTotalDTO struct {
	Method string      `json:"payment_method"`
	Count  int64       `json:"count"`
	Total  json.Number `json:"total"`
}

func ToMethodTotalDTOList(totals []analytics.MethodTotal) []MethodTotalDTO {
	dtos := make([]MethodTotalDTO, 0, len(totals))
	for _, t := range totals {
		dtos = append(dtos, MethodTotalDTO{
			Method: t.Method.String(),
			Count:  t.Count,
			Total:  t.Total.Number(),
		})
	}
	return dtos
}

type PaymentSummaryDTO struct {
	From     string           `json:"start_date"`
	To       string           `json:"end_date"`
	Total    json.Number      `json:"total"`
	Count    int64            `json:"count"`
	ByMethod []MethodTotalDTO `json:"by_method"`
}
