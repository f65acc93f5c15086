package authorization

import (
	"f3manager/internal/shared/errors"
)

// Actor identifies the staff member performing an operation.
type Actor struct {
	StaffID  uint
	Username string
	Role     UserRole
}

// SystemActor is used by CLI commands that run with operator credentials on
// the host itself (seeding, reminders).
var SystemActor = Actor{Username: "system", Role: RoleAdmin}

// Gate answers capability questions about an actor. Use cases consult it
// before restricted mutations and never inspect roles themselves.
type Gate interface {
	CanAdminister(actor Actor) bool
	CanOperate(actor Actor) bool
}

// RequireAdminister returns a forbidden error unless gate allows administration.
func RequireAdminister(gate Gate, actor Actor, action string) error {
	if gate.CanAdminister(actor) {
		return nil
	}
	return errors.NewForbiddenError("administrator privileges required", action)
}

// RequireOperate returns a forbidden error unless gate allows front-desk operations.
func RequireOperate(gate Gate, actor Actor, action string) error {
	if gate.CanOperate(actor) {
		return nil
	}
	return errors.NewForbiddenError("operator privileges required", action)
}

// RoleGate is a static role table, used when no policy engine is configured.
type RoleGate struct{}

func (RoleGate) CanAdminister(actor Actor) bool {
	return actor.Role.IsAdmin()
}

func (RoleGate) CanOperate(actor Actor) bool {
	return actor.Role.IsValid()
}
