package valueobjects

type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusExpired   SubscriptionStatus = "expired"
	StatusCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
// Only active subscriptions move; expired and cancelled are terminal.
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	return s == StatusActive && (target == StatusExpired || target == StatusCancelled)
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:    true,
	StatusExpired:   true,
	StatusCancelled: true,
}
