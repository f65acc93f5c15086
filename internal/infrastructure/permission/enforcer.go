package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/logger"
)

const (
	ActionAdminister = "administer"
	ActionOperate    = "operate"

	resourceGym = "gym"
)

// rbacModel grants a role every action of the roles it inherits.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var _ authorization.Gate = (*Enforcer)(nil)

// Enforcer answers the capability questions of authorization.Gate with a
// casbin RBAC model. Policies are fixed at construction: operators operate
// the front desk, admins inherit that and administer.
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	policies := [][]string{
		{authorization.RoleOperator.String(), resourceGym, ActionOperate},
		{authorization.RoleAdmin.String(), resourceGym, ActionAdminister},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("failed to add policy: %w", err)
		}
	}
	if _, err := enforcer.AddGroupingPolicy(authorization.RoleAdmin.String(), authorization.RoleOperator.String()); err != nil {
		return nil, fmt.Errorf("failed to add role inheritance: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role authorization.UserRole, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role.String(), resourceGym, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

func (e *Enforcer) CanAdminister(actor authorization.Actor) bool {
	return e.allowed(actor, ActionAdminister)
}

func (e *Enforcer) CanOperate(actor authorization.Actor) bool {
	return e.allowed(actor, ActionOperate)
}

// allowed fails closed on enforcement errors.
func (e *Enforcer) allowed(actor authorization.Actor, action string) bool {
	ok, err := e.Enforce(actor.Role, action)
	if err != nil {
		return false
	}
	if !ok {
		e.logger.Debugw("permission denied", "staff_id", actor.StaffID, "role", actor.Role, "action", action)
	}
	return ok
}
