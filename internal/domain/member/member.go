package member

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"f3manager/internal/shared/biztime"
)

const (
	maxNameLength  = 50
	maxEmailLength = 100
	phoneDigits    = 10
)

// Member is a registered gym member. Members are deactivated, not deleted,
// in normal operation.
type Member struct {
	id               uint
	firstName        string
	lastNamePaternal string
	lastNameMaternal string
	phone            string
	email            string
	birthDate        *time.Time
	emergencyContact string
	emergencyPhone   string
	photoURL         string
	active           bool
	registeredOn     time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// Profile carries the identity fields of a new member. Callers normalize
// casing and whitespace before building it.
type Profile struct {
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

// Policy holds the admission rules checked on every write.
type Policy struct {
	Today      time.Time
	MinimumAge int
}

// NewMember registers a member on policy.Today.
func NewMember(p Profile, policy Policy, now time.Time) (*Member, error) {
	m := &Member{
		active:       true,
		registeredOn: biztime.Normalize(policy.Today),
		createdAt:    now,
		updatedAt:    now,
	}
	m.apply(p)
	if err := m.validate(policy); err != nil {
		return nil, err
	}
	return m, nil
}

// ReconstructMember reconstructs a member from persistence
func ReconstructMember(
	id uint,
	p Profile,
	active bool,
	registeredOn, createdAt, updatedAt time.Time,
) (*Member, error) {
	if id == 0 {
		return nil, fmt.Errorf("member ID cannot be zero")
	}
	m := &Member{
		id:           id,
		active:       active,
		registeredOn: registeredOn,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
	m.apply(p)
	return m, nil
}

func (m *Member) apply(p Profile) {
	m.firstName = p.FirstName
	m.lastNamePaternal = p.LastNamePaternal
	m.lastNameMaternal = p.LastNameMaternal
	m.phone = p.Phone
	m.email = p.Email
	m.birthDate = p.BirthDate
	m.emergencyContact = p.EmergencyContact
	m.emergencyPhone = p.EmergencyPhone
	m.photoURL = p.PhotoURL
}

func (m *Member) validate(policy Policy) error {
	if err := validateName("first_name", m.firstName, true); err != nil {
		return err
	}
	if err := validateName("last_name_paternal", m.lastNamePaternal, true); err != nil {
		return err
	}
	if err := validateName("last_name_maternal", m.lastNameMaternal, false); err != nil {
		return err
	}
	if err := validatePhone(m.phone); err != nil {
		return err
	}
	if err := validatePhone(m.emergencyPhone); err != nil {
		return fmt.Errorf("emergency_phone: %w", err)
	}
	if m.email != "" {
		if len(m.email) > maxEmailLength {
			return fmt.Errorf("%w: too long", ErrInvalidEmail)
		}
		if _, err := mail.ParseAddress(m.email); err != nil || strings.ContainsAny(m.email, " <>") {
			return fmt.Errorf("%w: %s", ErrInvalidEmail, m.email)
		}
	}
	if m.birthDate != nil {
		today := biztime.Normalize(policy.Today)
		if m.birthDate.After(today) {
			return ErrBirthDateInFuture
		}
		if policy.MinimumAge > 0 && AgeOn(*m.birthDate, today) < policy.MinimumAge {
			return fmt.Errorf("%w of %d years", ErrBelowMinimumAge, policy.MinimumAge)
		}
	}
	return nil
}

func validateName(field, value string, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%w: %s is required", ErrInvalidName, field)
		}
		return nil
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidName, field, maxNameLength)
	}
	return nil
}

func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) != phoneDigits {
		return ErrInvalidPhone
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return ErrInvalidPhone
		}
	}
	return nil
}

// AgeOn returns the age in whole years on the given civil date.
func AgeOn(birth, on time.Time) int {
	age := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		age--
	}
	return age
}

// Patch lists optional profile changes. Nil fields are left untouched.
type Patch struct {
	FirstName        *string
	LastNamePaternal *string
	LastNameMaternal *string
	Phone            *string
	Email            *string
	BirthDate        *time.Time
	EmergencyContact *string
	EmergencyPhone   *string
	PhotoURL         *string
	Active           *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.LastNamePaternal == nil && p.LastNameMaternal == nil &&
		p.Phone == nil && p.Email == nil && p.BirthDate == nil && p.EmergencyContact == nil &&
		p.EmergencyPhone == nil && p.PhotoURL == nil && p.Active == nil
}

// ApplyPatch applies the provided fields and re-validates the result. On
// error the member is left unchanged.
func (m *Member) ApplyPatch(p Patch, policy Policy, now time.Time) error {
	next := *m
	if p.FirstName != nil {
		next.firstName = *p.FirstName
	}
	if p.LastNamePaternal != nil {
		next.lastNamePaternal = *p.LastNamePaternal
	}
	if p.LastNameMaternal != nil {
		next.lastNameMaternal = *p.LastNameMaternal
	}
	if p.Phone != nil {
		next.phone = *p.Phone
	}
	if p.Email != nil {
		next.email = *p.Email
	}
	if p.BirthDate != nil {
		bd := biztime.Normalize(*p.BirthDate)
		next.birthDate = &bd
	}
	if p.EmergencyContact != nil {
		next.emergencyContact = *p.EmergencyContact
	}
	if p.EmergencyPhone != nil {
		next.emergencyPhone = *p.EmergencyPhone
	}
	if p.PhotoURL != nil {
		next.photoURL = *p.PhotoURL
	}
	if p.Active != nil {
		next.active = *p.Active
	}
	if err := next.validate(policy); err != nil {
		return err
	}
	next.updatedAt = now
	*m = next
	return nil
}

// Deactivate marks the member inactive. Deactivating twice is a no-op.
func (m *Member) Deactivate(now time.Time) {
	if !m.active {
		return
	}
	m.active = false
	m.updatedAt = now
}

func (m *Member) ID() uint                 { return m.id }
func (m *Member) FirstName() string        { return m.firstName }
func (m *Member) LastNamePaternal() string { return m.lastNamePaternal }
func (m *Member) LastNameMaternal() string { return m.lastNameMaternal }
func (m *Member) Phone() string            { return m.phone }
func (m *Member) Email() string            { return m.email }
func (m *Member) BirthDate() *time.Time    { return m.birthDate }
func (m *Member) EmergencyContact() string { return m.emergencyContact }
func (m *Member) EmergencyPhone() string   { return m.emergencyPhone }
func (m *Member) PhotoURL() string         { return m.photoURL }
func (m *Member) IsActive() bool           { return m.active }
func (m *Member) RegisteredOn() time.Time  { return m.registeredOn }
func (m *Member) CreatedAt() time.Time     { return m.createdAt }
func (m *Member) UpdatedAt() time.Time     { return m.updatedAt }

// FullName joins the name parts, skipping an empty maternal last name.
func (m *Member) FullName() string {
	parts := []string{m.firstName, m.lastNamePaternal}
	if m.lastNameMaternal != "" {
		parts = append(parts, m.lastNameMaternal)
	}
	return strings.Join(parts, " ")
}

// Profile returns the member's identity fields.
func (m *Member) Profile() Profile {
	return Profile{
		FirstName:        m.firstName,
		LastNamePaternal: m.lastNamePaternal,
		LastNameMaternal: m.lastNameMaternal,
		Phone:            m.phone,
		Email:            m.email,
		BirthDate:        m.birthDate,
		EmergencyContact: m.emergencyContact,
		EmergencyPhone:   m.emergencyPhone,
		PhotoURL:         m.photoURL,
	}
}

// SetID sets the member ID after persistence
func (m *Member) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("member ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("member ID cannot be zero")
	}
	m.id = id
	return nil
}
