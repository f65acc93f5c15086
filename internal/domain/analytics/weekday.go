// Package analytics holds the read-only reducers behind the dashboard and
// reports. Every function here is pure: callers load a snapshot of members,
// subscriptions, payments and attendance and pass it in.
package analytics

import (
	"time"

	"golang.org/x/text/language"
)

// WeekdayNames maps time.Weekday (Sunday first) to a display name.
type WeekdayNames [7]string

func (w WeekdayNames) Name(d time.Time) string {
	return w[d.Weekday()]
}

var (
	spanishWeekdays = WeekdayNames{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}
	englishWeekdays = WeekdayNames{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

	weekdayTables = []WeekdayNames{spanishWeekdays, englishWeekdays}
	localeMatcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})
)

// WeekdaysFor returns the weekday table best matching locale. Unknown or
// malformed locales get Spanish.
func WeekdaysFor(locale string) WeekdayNames {
	tag, err := language.Parse(locale)
	if err != nil {
		return spanishWeekdays
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return spanishWeekdays
	}
	return weekdayTables[idx]
}
