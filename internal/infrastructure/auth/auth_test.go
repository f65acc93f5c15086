package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"f3manager/internal/domain/staff"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.NoError(t, h.Verify("correct horse", hash))
	assert.ErrorIs(t, h.Verify("wrong", hash), staff.ErrPasswordMismatch)

	err = h.Verify("correct horse", "not-a-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, staff.ErrPasswordMismatch)

	_, err = h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, staff.ErrPasswordTooLong)
}

func TestBcryptPasswordHasher_NeedsRehash(t *testing.T) {
	weak := NewBcryptPasswordHasher(bcrypt.MinCost)
	hash, err := weak.Hash("correct horse")
	require.NoError(t, err)

	assert.False(t, weak.NeedsRehash(hash))
	assert.True(t, NewBcryptPasswordHasher(bcrypt.MinCost+1).NeedsRehash(hash))
	assert.True(t, weak.NeedsRehash("not-a-hash"))
}

func TestNewBcryptPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(99).cost)
}

func TestJWTService_RoundTrip(t *testing.T) {
	clock := biztime.NewFixedClock(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC))
	svc := NewJWTService("test-secret", 60, clock)
	actor := authorization.Actor{StaffID: 7, Username: "recepcion", Role: authorization.RoleOperator}

	token, err := svc.Generate(actor)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := svc.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, actor, claims.Actor())

	clock.Advance(61 * time.Minute)
	_, err = svc.Verify(token.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	clock := biztime.NewFixedClock(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC))
	token, err := NewJWTService("one", 60, clock).Generate(authorization.Actor{StaffID: 1, Role: authorization.RoleAdmin})
	require.NoError(t, err)

	_, err = NewJWTService("two", 60, clock).Verify(token.AccessToken)
	assert.Error(t, err)
}
