// Package biztime provides the gym's calendar: the business timezone, the
// Clock collaborator and civil-date arithmetic.
//
// Conventions:
//   - Instants (check-in time, created_at) are stored in UTC.
//   - Calendar dates (start/end dates, payment dates, attendance dates) are
//     civil dates represented as time.Time at 00:00 UTC. They never carry a
//     wall-clock component, so comparisons and day arithmetic are exact.
//   - The business timezone is only used to decide which civil date an
//     instant falls on.
package biztime

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "America/Mexico_City"

	// DateLayout is the wire and storage layout of civil dates.
	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NewDate builds a civil date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf returns the civil date on which instant t falls in the business timezone.
func DateOf(t time.Time) time.Time {
	b := t.In(Location())
	return NewDate(b.Year(), b.Month(), b.Day())
}

// Normalize strips any wall-clock component from a civil date.
func Normalize(d time.Time) time.Time {
	return NewDate(d.Year(), d.Month(), d.Day())
}

// AddDays shifts a civil date by n days.
func AddDays(d time.Time, n int) time.Time {
	return Normalize(d).AddDate(0, 0, n)
}

// DaysBetween returns the number of whole days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}

// StartOfMonth returns the first civil date of d's month.
func StartOfMonth(d time.Time) time.Time {
	return NewDate(d.Year(), d.Month(), 1)
}

// StartOfDayUTC returns the instant at which civil date d begins in the
// business timezone, expressed in UTC. Used to bound timestamp queries.
func StartOfDayUTC(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, Location()).UTC()
}

// EndOfDayUTC returns the last instant of civil date d in the business timezone.
func EndOfDayUTC(d time.Time) time.Time {
	return StartOfDayUTC(AddDays(d, 1)).Add(-time.Nanosecond)
}

// ParseDate parses YYYY-MM-DD into a civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a civil date as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// FormatClock renders the wall-clock time of instant t (HH:MM) in the business timezone.
func FormatClock(t time.Time) string {
	return t.In(Location()).Format("15:04")
}

// ToBizTimezone converts a UTC time to business timezone for display.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}
