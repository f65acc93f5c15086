package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		code  int
		check func(error) bool
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest, IsValidationError},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound, IsNotFoundError},
		{"conflict", NewConflictError("dup"), http.StatusConflict, IsConflictError},
		{"precondition", NewPreconditionFailedError("wrong state"), http.StatusPreconditionFailed, IsPreconditionFailedError},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden, IsForbiddenError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.True(t, tt.check(tt.err))
			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.True(t, tt.check(wrapped))
			assert.Same(t, tt.err, GetAppError(wrapped))
		})
	}
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "conflict: dup", NewConflictError("dup").Error())
	assert.Equal(t, "conflict: dup (id=3)", NewConflictError("dup", "id=3").Error())
}

func TestAuthError_UnwrapsToAppError(t *testing.T) {
	err := NewInvalidCredentialsError()
	appErr := GetAppError(err)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	}
	assert.False(t, ShouldLogAuthError(err))
	assert.True(t, ShouldLogAuthError(NewTokenInvalidError("token")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'a' for key 'uk_email'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: members.email")))
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
	assert.True(t, IsForeignKeyError(fmt.Errorf("FOREIGN KEY constraint failed")))
}
