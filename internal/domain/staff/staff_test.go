package staff

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/shared/authorization"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "h:"+password {
		return ErrPasswordMismatch
	}
	return nil
}

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewUser(t *testing.T) {
	u, err := NewUser("recepcion", " Front@F3.mx ", "Front Desk", authorization.RoleOperator, "secret123", plainHasher{}, now)
	require.NoError(t, err)
	assert.Equal(t, "front@f3.mx", u.Email())
	assert.True(t, u.IsActive())
	assert.Equal(t, authorization.RoleOperator, u.Actor().Role)
}

func TestNewUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		role     authorization.UserRole
		password string
		wantErr  error
	}{
		{"short username", "ab", "a@b.mx", authorization.RoleAdmin, "secret123", ErrInvalidUsername},
		{"bad email", "admin", "nope", authorization.RoleAdmin, "secret123", ErrInvalidEmail},
		{"bad role", "admin", "a@b.mx", authorization.UserRole("owner"), "secret123", ErrInvalidRole},
		{"weak password", "admin", "a@b.mx", authorization.RoleAdmin, "short", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, tt.email, "", tt.role, tt.password, plainHasher{}, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	u, err := NewUser("admin", "admin@f3.mx", "", authorization.RoleAdmin, "secret123", plainHasher{}, now)
	require.NoError(t, err)

	assert.ErrorIs(t, u.Authenticate("wrong", plainHasher{}, now), ErrInvalidCredential)
	assert.Nil(t, u.LastLoginAt())

	require.NoError(t, u.Authenticate("secret123", plainHasher{}, now))
	require.NotNil(t, u.LastLoginAt())

	u.Disable(now)
	assert.ErrorIs(t, u.Authenticate("secret123", plainHasher{}, now), ErrStaffInactive)
}

type brokenHasher struct{ plainHasher }

func (brokenHasher) Verify(password, hash string) error { return errors.New("corrupt hash") }

// costHasher tags hashes with its cost and wants anything else rehashed.
type costHasher struct{ cost string }

func (h costHasher) Hash(password string) (string, error) { return h.cost + ":" + password, nil }

func (h costHasher) Verify(password, hash string) error {
	if !strings.HasSuffix(hash, ":"+password) {
		return ErrPasswordMismatch
	}
	return nil
}

func (h costHasher) NeedsRehash(hash string) bool { return !strings.HasPrefix(hash, h.cost+":") }

func TestAuthenticate_UnusableHash(t *testing.T) {
	u, err := NewUser("admin", "admin@f3.mx", "", authorization.RoleAdmin, "secret123", plainHasher{}, now)
	require.NoError(t, err)

	err = u.Authenticate("secret123", brokenHasher{}, now)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredential)
	assert.ErrorContains(t, err, "corrupt hash")
	assert.Nil(t, u.LastLoginAt())
}

func TestAuthenticate_RehashesOutdatedHash(t *testing.T) {
	u, err := NewUser("admin", "admin@f3.mx", "", authorization.RoleAdmin, "secret123", costHasher{cost: "4"}, now)
	require.NoError(t, err)
	assert.Equal(t, "4:secret123", u.PasswordHash())

	require.NoError(t, u.Authenticate("secret123", costHasher{cost: "10"}, now))
	assert.Equal(t, "10:secret123", u.PasswordHash())

	assert.ErrorIs(t, u.Authenticate("nope", costHasher{cost: "12"}, now), ErrInvalidCredential)
	assert.Equal(t, "10:secret123", u.PasswordHash())
}

func TestChangePassword_Length(t *testing.T) {
	u, err := NewUser("admin", "admin@f3.mx", "", authorization.RoleAdmin, "secret123", plainHasher{}, now)
	require.NoError(t, err)

	assert.ErrorIs(t, u.ChangePassword("short", plainHasher{}, now), ErrWeakPassword)
	assert.ErrorIs(t, u.ChangePassword(strings.Repeat("p", 73), plainHasher{}, now), ErrPasswordTooLong)
	require.NoError(t, u.ChangePassword(strings.Repeat("p", 72), plainHasher{}, now))
	assert.Equal(t, "h:"+strings.Repeat("p", 72), u.PasswordHash())
}
