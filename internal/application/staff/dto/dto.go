package dto

import (
	"time"

	"f3manager/internal/domain/staff"
)

type StaffDTO struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToStaffDTO(u *staff.User) *StaffDTO {
	if u == nil {
		return nil
	}
	return &StaffDTO{
		ID:          u.ID(),
		Username:    u.Username(),
		Email:       u.Email(),
		FullName:    u.FullName(),
		Role:        u.Role().String(),
		IsActive:    u.IsActive(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
	}
}

func ToStaffDTOList(users []*staff.User) []*StaffDTO {
	dtos := make([]*StaffDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, ToStaffDTO(u))
	}
	return dtos
}
