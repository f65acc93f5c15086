package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrStartDateInPast         = errors.New("start date cannot be in the past")
	ErrPlanNotFound            = errors.New("plan not found")
	ErrPlanInactive            = errors.New("plan is inactive")
	ErrInvalidPlanName         = errors.New("invalid plan name")
	ErrInvalidPrice            = errors.New("invalid price")
	ErrInvalidDuration         = errors.New("invalid duration")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
