package member

import "errors"

var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrMemberInactive    = errors.New("member is inactive")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidPhone      = errors.New("phone must contain exactly 10 digits")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrBirthDateInFuture = errors.New("birth date cannot be in the future")
	ErrBelowMinimumAge   = errors.New("member is below the minimum age")
)
