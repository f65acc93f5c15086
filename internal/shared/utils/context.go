package utils

import (
	"github.com/gin-gonic/gin"

	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/constants"
	"f3manager/internal/shared/errors"
)

// SetActor stores the authenticated staff identity on the request context.
func SetActor(c *gin.Context, actor authorization.Actor) {
	c.Set(constants.ContextKeyStaffID, actor.StaffID)
	c.Set(constants.ContextKeyUsername, actor.Username)
	c.Set(constants.ContextKeyRole, string(actor.Role))
}

// GetActor reads the identity set by the auth middleware.
func GetActor(c *gin.Context) (authorization.Actor, bool) {
	id, ok := c.Get(constants.ContextKeyStaffID)
	if !ok {
		return authorization.Actor{}, false
	}
	staffID, ok := id.(uint)
	if !ok {
		return authorization.Actor{}, false
	}
	return authorization.Actor{
		StaffID:  staffID,
		Username: c.GetString(constants.ContextKeyUsername),
		Role:     authorization.UserRole(c.GetString(constants.ContextKeyRole)),
	}, true
}

// MustGetActor is GetActor for handlers mounted behind the auth middleware.
// A missing identity is reported as unauthorized.
func MustGetActor(c *gin.Context) (authorization.Actor, error) {
	actor, ok := GetActor(c)
	if !ok {
		return authorization.Actor{}, errors.NewUnauthorizedError("authentication required")
	}
	return actor, nil
}
