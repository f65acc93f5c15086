package dto

import (
	"time"

	subdto "f3manager/internal/application/subscription/dto"
	"f3manager/internal/domain/member"
	"f3manager/internal/shared/biztime"
)

type MemberDTO struct {
	ID               uint      `json:"id"`
	FirstName        string    `json:"first_name"`
	LastNamePaternal string    `json:"last_name_paternal"`
	LastNameMaternal string    `json:"last_name_maternal,omitempty"`
	FullName         string    `json:"full_name"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	BirthDate        *string   `json:"birth_date,omitempty"`
	Age              *int      `json:"age,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	EmergencyPhone   string    `json:"emergency_phone,omitempty"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	IsActive         bool      `json:"is_active"`
	RegisteredOn     string    `json:"registration_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToMemberDTO(m *member.Member, today time.Time) *MemberDTO {
	if m == nil {
		return nil
	}
	d := &MemberDTO{
		ID:               m.ID(),
		FirstName:        m.FirstName(),
		LastNamePaternal: m.LastNamePaternal(),
		LastNameMaternal: m.LastNameMaternal(),
		FullName:         m.FullName(),
		Phone:            m.Phone(),
		Email:            m.Email(),
		EmergencyContact: m.EmergencyContact(),
		EmergencyPhone:   m.EmergencyPhone(),
		PhotoURL:         m.PhotoURL(),
		IsActive:         m.IsActive(),
		RegisteredOn:     biztime.FormatDate(m.RegisteredOn()),
		CreatedAt:        m.CreatedAt(),
		UpdatedAt:        m.UpdatedAt(),
	}
	if bd := m.BirthDate(); bd != nil {
		s := biztime.FormatDate(*bd)
		age := member.AgeOn(*bd, today)
		d.BirthDate = &s
		d.Age = &age
	}
	return d
}

func ToMemberDTOList(members []*member.Member, today time.Time) []*MemberDTO {
	dtos := make([]*MemberDTO, 0, len(members))
	for _, m := range members {
		if m != nil {
			dtos = append(dtos, ToMemberDTO(m, today))
		}
	}
	return dtos
}

// MemberDetailDTO adds the subscription covering today, if any.
type MemberDetailDTO struct {
	*MemberDTO
	ActiveSubscription *subdto.SubscriptionDTO `json:"active_subscription"`
}
