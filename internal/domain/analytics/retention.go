package analytics

import (
	"time"

	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/shared/biztime"
)

// Retention summarizes how many members keep paying.
type Retention struct {
	TotalMembers    int64
	ActiveMembers   int64
	RetentionRate   float64
	ExpiredInPeriod int64
	Renewed         int64
	RenewalRate     float64
}

// ComputeRetention derives retention and renewal rates.
//
// Active members are distinct members holding a subscription that is active
// and covers today. A member counts as expired in the period when one of
// their subscriptions reads as expired today and its end date falls inside
// [from, to]. Such a member is renewed when they also hold a current
// subscription that started on or after from.
func ComputeRetention(totalMembers int64, subs []*subscription.Subscription, from, to, today time.Time) Retention {
	from, to = biztime.Normalize(from), biztime.Normalize(to)

	current := make(map[uint]*subscription.Subscription)
	expired := make(map[uint]struct{})
	for _, s := range subs {
		if s.IsCurrent(today) {
			if prev, ok := current[s.MemberID()]; !ok || s.StartDate().After(prev.StartDate()) {
				current[s.MemberID()] = s
			}
			continue
		}
		if s.EffectiveStatus(today) != vo.StatusExpired {
			continue
		}
		if s.EndDate().Before(from) || s.EndDate().After(to) {
			continue
		}
		expired[s.MemberID()] = struct{}{}
	}

	var renewed int64
	for memberID := range expired {
		if s, ok := current[memberID]; ok && !s.StartDate().Before(from) {
			renewed++
		}
	}

	r := Retention{
		TotalMembers:    totalMembers,
		ActiveMembers:   int64(len(current)),
		ExpiredInPeriod: int64(len(expired)),
		Renewed:         renewed,
	}
	r.RetentionRate = Percent(r.ActiveMembers, r.TotalMembers)
	r.RenewalRate = Percent(r.Renewed, r.ExpiredInPeriod)
	return r
}
