// Package staff models the gym employees who operate the system.
package staff

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"f3manager/internal/shared/authorization"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
	maxPasswordLength = 72
)

var (
	ErrStaffNotFound     = errors.New("staff user not found")
	ErrInvalidUsername   = errors.New("username must be 3-50 characters of letters, digits, dot, dash or underscore")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrWeakPassword      = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong   = errors.New("password must be at most 72 bytes")
	ErrPasswordMismatch  = errors.New("password does not match")
	ErrInvalidRole       = errors.New("invalid staff role")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrStaffInactive     = errors.New("staff account is disabled")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,50}$`)

// PasswordHasher turns staff passwords into stored hashes. Verify returns
// ErrPasswordMismatch for a wrong password; any other error means the stored
// hash could not be checked at all.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// RehashChecker is implemented by hashers whose settings can change after a
// hash was stored, such as a raised bcrypt cost.
type RehashChecker interface {
	NeedsRehash(hash string) bool
}

// User is a staff account able to sign in.
type User struct {
	id           uint
	username     string
	email        string
	fullName     string
	role         authorization.UserRole
	passwordHash string
	active       bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username, email, fullName string, role authorization.UserRole, password string, hasher PasswordHasher, now time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	hash, err := hashPassword(password, hasher)
	if err != nil {
		return nil, err
	}

	return &User{
		username:     username,
		email:        email,
		fullName:     strings.TrimSpace(fullName),
		role:         role,
		passwordHash: hash,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a staff user from persistence
func ReconstructUser(
	id uint,
	username, email, fullName string,
	role authorization.UserRole,
	passwordHash string,
	active bool,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("staff user ID cannot be zero")
	}
	return &User{
		id:           id,
		username:     username,
		email:        email,
		fullName:     fullName,
		role:         role,
		passwordHash: passwordHash,
		active:       active,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Username() string             { return u.username }
func (u *User) Email() string                { return u.email }
func (u *User) FullName() string             { return u.fullName }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) IsActive() bool               { return u.active }
func (u *User) LastLoginAt() *time.Time      { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

// Actor returns the authorization identity of this user.
func (u *User) Actor() authorization.Actor {
	return authorization.Actor{StaffID: u.id, Username: u.username, Role: u.role}
}

// Authenticate checks the password and records the login on success. A hash
// the hasher reports as outdated is replaced while the plain password is at
// hand. A hash that cannot be checked is returned wrapped rather than as
// ErrInvalidCredential.
func (u *User) Authenticate(password string, hasher PasswordHasher, now time.Time) error {
	if err := hasher.Verify(password, u.passwordHash); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return ErrInvalidCredential
		}
		return fmt.Errorf("failed to verify password of %s: %w", u.username, err)
	}
	if !u.active {
		return ErrStaffInactive
	}
	if rc, ok := hasher.(RehashChecker); ok && rc.NeedsRehash(u.passwordHash) {
		if hash, err := hasher.Hash(password); err == nil {
			u.passwordHash = hash
		}
	}
	u.lastLoginAt = &now
	u.updatedAt = now
	return nil
}

func (u *User) ChangePassword(password string, hasher PasswordHasher, now time.Time) error {
	hash, err := hashPassword(password, hasher)
	if err != nil {
		return err
	}
	u.passwordHash = hash
	u.updatedAt = now
	return nil
}

func hashPassword(password string, hasher PasswordHasher) (string, error) {
	switch {
	case len(password) < minPasswordLength:
		return "", ErrWeakPassword
	case len(password) > maxPasswordLength:
		return "", ErrPasswordTooLong
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func (u *User) ChangeRole(role authorization.UserRole, now time.Time) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	u.role = role
	u.updatedAt = now
	return nil
}

func (u *User) Disable(now time.Time) {
	u.active = false
	u.updatedAt = now
}

func (u *User) Enable(now time.Time) {
	u.active = true
	u.updatedAt = now
}

// SetID sets the staff user ID after persistence
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("staff user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("staff user ID cannot be zero")
	}
	u.id = id
	return nil
}
