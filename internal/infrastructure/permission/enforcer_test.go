package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/logger"
)

func TestEnforcer_Gate(t *testing.T) {
	e, err := NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)

	admin := authorization.Actor{StaffID: 1, Role: authorization.RoleAdmin}
	operator := authorization.Actor{StaffID: 2, Role: authorization.RoleOperator}
	guest := authorization.Actor{StaffID: 3, Role: authorization.UserRole("guest")}

	assert.True(t, e.CanAdminister(admin))
	assert.True(t, e.CanOperate(admin), "admin inherits operator")
	assert.False(t, e.CanAdminister(operator))
	assert.True(t, e.CanOperate(operator))
	assert.False(t, e.CanOperate(guest))
	assert.False(t, e.CanAdminister(guest))
}

func TestEnforcer_MatchesRoleGate(t *testing.T) {
	e, err := NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)
	static := authorization.RoleGate{}

	for _, role := range []authorization.UserRole{authorization.RoleAdmin, authorization.RoleOperator, "guest"} {
		actor := authorization.Actor{Role: role}
		assert.Equal(t, static.CanAdminister(actor), e.CanAdminister(actor), role)
		assert.Equal(t, static.CanOperate(actor), e.CanOperate(actor), role)
	}
}
