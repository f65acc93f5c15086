package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
)

// DailyStats summarizes the visits of one day.
type DailyStats struct {
	Date                   time.Time
	TotalVisits            int64
	UniqueMembers          int64
	AverageDurationMinutes *float64
	// CurrentlyPresent is only set when the day is today.
	CurrentlyPresent *int64
}

// ComputeDailyStats reduces the visits recorded on date. The average duration
// covers completed visits only and is nil when there are none.
func ComputeDailyStats(date, today time.Time, records []*attendance.Attendance) DailyStats {
	date = biztime.Normalize(date)
	stats := DailyStats{Date: date}

	members := make(map[uint]struct{})
	var open, completed, minutes int64
	for _, r := range records {
		if !r.Date().Equal(date) {
			continue
		}
		stats.TotalVisits++
		members[r.MemberID()] = struct{}{}
		if r.IsOpen() {
			open++
			continue
		}
		if d := r.DurationMinutes(); d != nil {
			completed++
			minutes += int64(*d)
		}
	}
	stats.UniqueMembers = int64(len(members))

	if completed > 0 {
		avg := decimal.NewFromInt(minutes).Div(decimal.NewFromInt(completed)).Round(1).InexactFloat64()
		stats.AverageDurationMinutes = &avg
	}
	if date.Equal(biztime.Normalize(today)) {
		stats.CurrentlyPresent = &open
	}
	return stats
}

// MemberVisits counts the visits of one member.
type MemberVisits struct {
	MemberID uint
	Visits   int64
}

// TopMembers ranks members by visit count, ties broken by member id.
func TopMembers(records []*attendance.Attendance, limit int) []MemberVisits {
	counts := make(map[uint]int64)
	for _, r := range records {
		counts[r.MemberID()]++
	}
	ranked := make([]MemberVisits, 0, len(counts))
	for id, n := range counts {
		ranked = append(ranked, MemberVisits{MemberID: id, Visits: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Visits != ranked[j].Visits {
			return ranked[i].Visits > ranked[j].Visits
		}
		return ranked[i].MemberID < ranked[j].MemberID
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// PlanCount is the number of current subscriptions on a plan.
type PlanCount struct {
	Plan                *subscription.Plan
	ActiveSubscriptions int64
}

// CountActiveByPlan counts current subscriptions per plan, including plans
// with none, ordered by count descending then plan name.
func CountActiveByPlan(plans []*subscription.Plan, subs []*subscription.Subscription, today time.Time) []PlanCount {
	counts := make(map[uint]int64)
	for _, s := range subs {
		if s.IsCurrent(today) {
			counts[s.PlanID()]++
		}
	}
	result := make([]PlanCount, 0, len(plans))
	for _, p := range plans {
		result = append(result, PlanCount{Plan: p, ActiveSubscriptions: counts[p.ID()]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].ActiveSubscriptions != result[j].ActiveSubscriptions {
			return result[i].ActiveSubscriptions > result[j].ActiveSubscriptions
		}
		return result[i].Plan.Name() < result[j].Plan.Name()
	})
	return result
}
