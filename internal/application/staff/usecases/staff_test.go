package usecases

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"f3manager/internal/application/apptest"
	"f3manager/internal/infrastructure/auth"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/errors"
)

type accounts struct {
	h        *apptest.Harness
	jwt      *auth.JWTService
	login    *LoginUseCase
	register *RegisterStaffUseCase
	get      *GetStaffUseCase
}

func newAccounts(t *testing.T) *accounts {
	h := apptest.New(t)
	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	jwt := auth.NewJWTService("test-secret", 60, h.Clock)
	return &accounts{
		h:        h,
		jwt:      jwt,
		login:    NewLoginUseCase(h.Staff, hasher, jwt, h.Clock, h.Logger),
		register: NewRegisterStaffUseCase(h.Staff, hasher, h.Gate, h.Clock, h.Logger),
		get:      NewGetStaffUseCase(h.Staff, h.Gate, h.Logger),
	}
}

func TestBootstrapAndLogin(t *testing.T) {
	a := newAccounts(t)
	ctx := context.Background()

	admin, err := a.register.Bootstrap(ctx, RegisterStaffCommand{
		Username: "admin",
		Email:    "Admin@F3.mx",
		FullName: "Dueño",
		Role:     "admin",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@f3.mx", admin.Email)
	assert.Equal(t, "admin", admin.Role)

	res, err := a.login.Execute(ctx, LoginCommand{Username: "admin", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims, err := a.jwt.Verify(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.StaffID)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)

	me, err := a.get.Me(ctx, claims.Actor())
	require.NoError(t, err)
	require.NotNil(t, me.LastLoginAt)
	assert.WithinDuration(t, a.h.Clock.Now(), *me.LastLoginAt, time.Second)
}

func TestLogin_UpgradesHashCost(t *testing.T) {
	a := newAccounts(t)
	ctx := context.Background()
	_, err := a.register.Bootstrap(ctx, RegisterStaffCommand{
		Username: "recepcion", Email: "recepcion@f3.mx", Password: "front-desk-1",
	})
	require.NoError(t, err)

	stronger := auth.NewBcryptPasswordHasher(bcrypt.MinCost + 1)
	login := NewLoginUseCase(a.h.Staff, stronger, a.jwt, a.h.Clock, a.h.Logger)
	_, err = login.Execute(ctx, LoginCommand{Username: "recepcion", Password: "front-desk-1"})
	require.NoError(t, err)

	user, err := a.h.Staff.GetByUsername(ctx, "recepcion")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(user.PasswordHash()))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)

	// the original cost still verifies the upgraded hash
	_, err = a.login.Execute(ctx, LoginCommand{Username: "recepcion", Password: "front-desk-1"})
	require.NoError(t, err)
}

func TestLogin_Failures(t *testing.T) {
	a := newAccounts(t)
	ctx := context.Background()
	_, err := a.register.Bootstrap(ctx, RegisterStaffCommand{
		Username: "recepcion", Email: "recepcion@f3.mx", FullName: "Recepción", Password: "front-desk-1",
	})
	require.NoError(t, err)

	_, err = a.login.Execute(ctx, LoginCommand{Username: "recepcion", Password: "wrong-password"})
	require.NotNil(t, errors.GetAppError(err))
	assert.Equal(t, errors.ErrorTypeInvalidCredentials, errors.GetAppError(err).Type)
	assert.Equal(t, http.StatusUnauthorized, errors.GetAppError(err).Code)

	_, unknown := a.login.Execute(ctx, LoginCommand{Username: "nadie", Password: "whatever1"})
	assert.Equal(t, err.Error(), unknown.Error())

	_, err = a.login.Execute(ctx, LoginCommand{Username: " ", Password: ""})
	assert.True(t, errors.IsValidationError(err))

	user, err := a.h.Staff.GetByUsername(ctx, "recepcion")
	require.NoError(t, err)
	user.Disable(a.h.Clock.Now())
	require.NoError(t, a.h.Staff.Update(ctx, user))
	_, err = a.login.Execute(ctx, LoginCommand{Username: "recepcion", Password: "front-desk-1"})
	require.NotNil(t, errors.GetAppError(err))
	assert.Equal(t, errors.ErrorTypeAccountInactive, errors.GetAppError(err).Type)
	assert.Equal(t, http.StatusForbidden, errors.GetAppError(err).Code)
}

func TestRegisterStaff(t *testing.T) {
	a := newAccounts(t)
	ctx := context.Background()
	cmd := RegisterStaffCommand{
		Username: "turno.tarde",
		Email:    "tarde@f3.mx",
		FullName: "Turno Tarde",
		Password: "afternoon-1",
	}

	cmd.Actor = apptest.Operator
	_, err := a.register.Execute(ctx, cmd)
	assert.True(t, errors.IsForbiddenError(err))

	cmd.Actor = apptest.Admin
	created, err := a.register.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "operator", created.Role)

	_, err = a.register.Execute(ctx, cmd)
	assert.True(t, errors.IsConflictError(err))

	for name, bad := range map[string]RegisterStaffCommand{
		"short password": {Username: "otro", Email: "otro@f3.mx", Password: "short", Actor: apptest.Admin},
		"bad email":      {Username: "otro", Email: "otro", Password: "long-enough", Actor: apptest.Admin},
		"bad role":       {Username: "otro", Email: "otro@f3.mx", Password: "long-enough", Role: "root", Actor: apptest.Admin},
		"bad username":   {Username: "o", Email: "otro@f3.mx", Password: "long-enough", Actor: apptest.Admin},
	} {
		_, err := a.register.Execute(ctx, bad)
		assert.True(t, errors.IsValidationError(err), name)
	}

	_, err = a.get.List(ctx, apptest.Operator)
	assert.True(t, errors.IsForbiddenError(err))
	users, err := a.get.List(ctx, apptest.Admin)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
