package usecases

import (
	"strings"
	"time"

	"f3manager/internal/domain/member"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/utils"
)

// ProfileInput is the raw member profile as typed at the front desk.
type ProfileInput struct {
	FirstName        string
	LastNamePaternal string
	LastNameMaternal string
	Phone            string
	Email            string
	BirthDate        *time.Time
	EmergencyContact string
	EmergencyPhone   string
	PhotoURL         string
}

func (in ProfileInput) normalize() member.Profile {
	p := member.Profile{
		FirstName:        utils.NormalizePersonName(in.FirstName),
		LastNamePaternal: utils.NormalizePersonName(in.LastNamePaternal),
		LastNameMaternal: utils.NormalizePersonName(in.LastNameMaternal),
		Phone:            normalizePhone(in.Phone),
		Email:            utils.NormalizeEmail(in.Email),
		EmergencyContact: utils.NormalizePersonName(in.EmergencyContact),
		EmergencyPhone:   normalizePhone(in.EmergencyPhone),
		PhotoURL:         strings.TrimSpace(in.PhotoURL),
	}
	if in.BirthDate != nil {
		bd := biztime.Normalize(*in.BirthDate)
		p.BirthDate = &bd
	}
	return p
}

// normalizePhone drops common separators. Input with anything other than
// digits and separators is kept verbatim so validation rejects it.
func normalizePhone(s string) string {
	s = strings.TrimSpace(s)
	if strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && !strings.ContainsRune(" -().", r)
	}) >= 0 {
		return s
	}
	return utils.DigitsOnly(s)
}

func normalizeOptional(s *string, fn func(string) string) *string {
	if s == nil {
		return nil
	}
	v := fn(*s)
	return &v
}

func validationError(err error) error {
	return errors.NewValidationError(err.Error())
}
