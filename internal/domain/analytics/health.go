package analytics

import (
	"sort"
	"time"

	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/constants"
)

// Health labels a member's standing in the activity feeds.
type Health string

const (
	HealthActive       Health = "active"
	HealthExpiringSoon Health = "expiring_soon"
	HealthExpired      Health = "expired"
)

// ClassifyHealth labels sub as of today. A nil subscription, or one that no
// longer covers today, counts as expired.
func ClassifyHealth(sub *subscription.Subscription, today time.Time) Health {
	if sub == nil || !sub.IsCurrent(today) {
		return HealthExpired
	}
	if sub.DaysRemaining(today) <= constants.ExpiringSoonThreshold {
		return HealthExpiringSoon
	}
	return HealthActive
}

// ExpiringItem is an active subscription ending inside the lookahead window.
type ExpiringItem struct {
	Subscription  *subscription.Subscription
	DaysRemaining int
}

// SelectExpiringSoon keeps current subscriptions with
// today <= end_date <= today+days, ordered by end date then id.
func SelectExpiringSoon(subs []*subscription.Subscription, today time.Time, days int) []ExpiringItem {
	items := make([]ExpiringItem, 0)
	for _, s := range subs {
		if !s.IsCurrent(today) {
			continue
		}
		remaining := s.DaysRemaining(today)
		if remaining > days {
			continue
		}
		items = append(items, ExpiringItem{Subscription: s, DaysRemaining: remaining})
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Subscription, items[j].Subscription
		if !a.EndDate().Equal(b.EndDate()) {
			return a.EndDate().Before(b.EndDate())
		}
		return a.ID() < b.ID()
	})
	return items
}
