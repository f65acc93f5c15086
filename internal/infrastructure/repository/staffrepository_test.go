package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/domain/staff"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) { return "x:" + password, nil }

func (prefixHasher) Verify(password, hash string) error {
	if hash != "x:"+password {
		return staff.ErrPasswordMismatch
	}
	return nil
}

func TestStaffRepository(t *testing.T) {
	f := newFixture(t)
	repo := NewStaffRepository(f.db, logger.NewNopLogger())

	u, err := staff.NewUser("recepcion", "recepcion@f3.mx", "Recepción", authorization.RoleOperator, "s3cret-pass", prefixHasher{}, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	dup, err := staff.NewUser("recepcion", "otra@f3.mx", "", authorization.RoleOperator, "s3cret-pass", prefixHasher{}, testNow)
	require.NoError(t, err)
	assert.True(t, errors.IsConflictError(repo.Create(ctx, dup)))

	require.NoError(t, u.Authenticate("s3cret-pass", prefixHasher{}, testNow))
	require.NoError(t, u.ChangeRole(authorization.RoleAdmin, testNow))
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByUsername(ctx, "recepcion")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, authorization.RoleAdmin, got.Role())
	assert.NotNil(t, got.LastLoginAt())
	assert.Equal(t, "x:s3cret-pass", got.PasswordHash())

	missing, err := repo.GetByUsername(ctx, "nadie")
	require.NoError(t, err)
	assert.Nil(t, missing)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
