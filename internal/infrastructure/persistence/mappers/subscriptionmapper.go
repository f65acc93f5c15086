package mappers

import (
	"fmt"

	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/infrastructure/persistence/models"
)

// SubscriptionMapper handles the conversion between domain entities and persistence models
type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type subscriptionMapper struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &subscriptionMapper{}
}

func (m *subscriptionMapper) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.MemberID,
		model.PlanID,
		sharedvo.NewMoney(model.PlanPriceCents),
		fromDate(model.StartDate),
		fromDate(model.EndDate),
		vo.SubscriptionStatus(model.Status),
		vo.PaymentStatus(model.PaymentStatus),
		sharedvo.NewMoney(model.AmountPaidCents),
		model.Notes,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}
	return entity, nil
}

func (m *subscriptionMapper) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}
	return &models.SubscriptionModel{
		ID:              entity.ID(),
		MemberID:        entity.MemberID(),
		PlanID:          entity.PlanID(),
		PlanPriceCents:  entity.PlanPrice().Cents(),
		StartDate:       toDate(entity.StartDate()),
		EndDate:         toDate(entity.EndDate()),
		Status:          entity.Status().String(),
		PaymentStatus:   entity.PaymentStatus().String(),
		AmountPaidCents: entity.AmountPaid().Cents(),
		Notes:           entity.Notes(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}
}

func (m *subscriptionMapper) ToEntities(rows []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(rows))
	for _, row := range rows {
		entity, err := m.ToEntity(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
