package mappers

import (
	"fmt"

	"f3manager/internal/domain/member"
	"f3manager/internal/infrastructure/persistence/models"
)

// MemberMapper handles the conversion between domain entities and persistence models
type MemberMapper interface {
	ToEntity(model *models.MemberModel) (*member.Member, error)
	ToModel(entity *member.Member) *models.MemberModel
	ToEntities(models []*models.MemberModel) ([]*member.Member, error)
}

type memberMapper struct{}

func NewMemberMapper() MemberMapper {
	return &memberMapper{}
}

func (m *memberMapper) ToEntity(model *models.MemberModel) (*member.Member, error) {
	if model == nil {
		return nil, nil
	}

	email := ""
	if model.Email != nil {
		email = *model.Email
	}

	entity, err := member.ReconstructMember(
		model.ID,
		member.Profile{
			FirstName:        model.FirstName,
			LastNamePaternal: model.LastNamePaternal,
			LastNameMaternal: model.LastNameMaternal,
			Phone:            model.Phone,
			Email:            email,
			BirthDate:        fromDatePtr(model.BirthDate),
			EmergencyContact: model.EmergencyContact,
			EmergencyPhone:   model.EmergencyPhone,
			PhotoURL:         model.PhotoURL,
		},
		model.IsActive,
		fromDate(model.RegisteredOn),
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct member entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a member to its row. An empty email is stored as NULL so
// the unique index only covers members that have one.
func (m *memberMapper) ToModel(entity *member.Member) *models.MemberModel {
	if entity == nil {
		return nil
	}

	var email *string
	if e := entity.Email(); e != "" {
		email = &e
	}

	return &models.MemberModel{
		ID:               entity.ID(),
		FirstName:        entity.FirstName(),
		LastNamePaternal: entity.LastNamePaternal(),
		LastNameMaternal: entity.LastNameMaternal(),
		Phone:            entity.Phone(),
		Email:            email,
		BirthDate:        toDatePtr(entity.BirthDate()),
		EmergencyContact: entity.EmergencyContact(),
		EmergencyPhone:   entity.EmergencyPhone(),
		PhotoURL:         entity.PhotoURL(),
		IsActive:         entity.IsActive(),
		RegisteredOn:     toDate(entity.RegisteredOn()),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func (m *memberMapper) ToEntities(rows []*models.MemberModel) ([]*member.Member, error) {
	entities := make([]*member.Member, 0, len(rows))
	for _, row := range rows {
		entity, err := m.ToEntity(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
