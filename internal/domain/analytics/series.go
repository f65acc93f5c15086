package analytics

import (
	"time"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/payment"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/shared/biztime"
)

// DailyFact is one observation to bucket by civil date.
type DailyFact struct {
	Date   time.Time
	Count  int64
	Amount sharedvo.Money
}

// DailyPoint is one bucket of a daily series.
type DailyPoint struct {
	Date    time.Time
	DayName string
	Count   int64
	Amount  sharedvo.Money
}

// LastNDays returns the inclusive range of n days ending today.
func LastNDays(today time.Time, n int) (from, to time.Time) {
	if n < 1 {
		n = 1
	}
	to = biztime.Normalize(today)
	return biztime.AddDays(to, -(n - 1)), to
}

// BuildDailySeries buckets facts into one point per day of [from, to],
// ascending, with zero points for days without facts. Facts outside the
// range are ignored.
func BuildDailySeries(from, to time.Time, names WeekdayNames, facts []DailyFact) []DailyPoint {
	from, to = biztime.Normalize(from), biztime.Normalize(to)
	days := biztime.DaysBetween(from, to) + 1
	if days <= 0 {
		return []DailyPoint{}
	}

	points := make([]DailyPoint, days)
	for i := range points {
		d := biztime.AddDays(from, i)
		points[i] = DailyPoint{Date: d, DayName: names.Name(d), Amount: sharedvo.Zero()}
	}
	for _, f := range facts {
		i := biztime.DaysBetween(from, biztime.Normalize(f.Date))
		if i < 0 || i >= days {
			continue
		}
		points[i].Count += f.Count
		points[i].Amount = points[i].Amount.Add(f.Amount)
	}
	return points
}

// AttendanceFacts turns visits into one-count facts on their visit date.
func AttendanceFacts(records []*attendance.Attendance) []DailyFact {
	facts := make([]DailyFact, 0, len(records))
	for _, r := range records {
		facts = append(facts, DailyFact{Date: r.Date(), Count: 1, Amount: sharedvo.Zero()})
	}
	return facts
}

// PaymentFacts turns payments into facts on their payment date.
func PaymentFacts(payments []*payment.Payment) []DailyFact {
	facts := make([]DailyFact, 0, len(payments))
	for _, p := range payments {
		facts = append(facts, DailyFact{Date: p.PaymentDate(), Count: 1, Amount: p.Amount()})
	}
	return facts
}
