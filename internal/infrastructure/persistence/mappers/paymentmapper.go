package mappers

import (
	"fmt"

	"f3manager/internal/domain/payment"
	vo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/infrastructure/persistence/models"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(model *models.PaymentModel) (*payment.Payment, error) {
	if model == nil {
		return nil, nil
	}

	method, err := vo.NewPaymentMethod(model.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("invalid stored payment method: %w", err)
	}

	return payment.ReconstructPayment(
		model.ID,
		model.SubscriptionID,
		model.MemberID,
		sharedvo.NewMoney(model.AmountCents),
		fromDate(model.PaymentDate),
		method,
		model.Reference,
		model.Notes,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func (m *PaymentMapper) ToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:             p.ID(),
		SubscriptionID: p.SubscriptionID(),
		MemberID:       p.MemberID(),
		AmountCents:    p.Amount().Cents(),
		PaymentDate:    toDate(p.PaymentDate()),
		PaymentMethod:  p.Method().String(),
		Reference:      p.Reference(),
		Notes:          p.Notes(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func (m *PaymentMapper) ToEntities(rows []*models.PaymentModel) ([]*payment.Payment, error) {
	entities := make([]*payment.Payment, 0, len(rows))
	for _, row := range rows {
		entity, err := m.ToEntity(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
