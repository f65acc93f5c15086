package mappers

import (
	"f3manager/internal/domain/staff"
	"f3manager/internal/infrastructure/persistence/models"
	"f3manager/internal/shared/authorization"
)

type StaffMapper struct{}

func NewStaffMapper() *StaffMapper {
	return &StaffMapper{}
}

func (m *StaffMapper) ToEntity(model *models.StaffUserModel) (*staff.User, error) {
	if model == nil {
		return nil, nil
	}
	return staff.ReconstructUser(
		model.ID,
		model.Username,
		model.Email,
		model.FullName,
		authorization.ParseUserRole(model.Role),
		model.PasswordHash,
		model.IsActive,
		utcPtr(model.LastLoginAt),
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func (m *StaffMapper) ToModel(u *staff.User) *models.StaffUserModel {
	return &models.StaffUserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		Email:        u.Email(),
		FullName:     u.FullName(),
		Role:         u.Role().String(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		LastLoginAt:  u.LastLoginAt(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}
