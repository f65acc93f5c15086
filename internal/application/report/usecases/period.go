package usecases

import (
	"fmt"
	"time"

	"f3manager/internal/application/report/dto"
	"f3manager/internal/domain/analytics"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

var periodDays = map[string]int{
	PeriodWeek:  7,
	PeriodMonth: 30,
	PeriodYear:  365,
}

// PeriodQuery selects a reporting window. An explicit From/To pair wins over
// the named period; an empty period means the last 30 days.
type PeriodQuery struct {
	Period string
	From   *time.Time
	To     *time.Time
}

type window struct {
	name     string
	from, to time.Time
}

func (w window) days() int {
	return biztime.DaysBetween(w.from, w.to) + 1
}

func (w window) dto() dto.PeriodDTO {
	return dto.PeriodDTO{
		Name:      w.name,
		StartDate: biztime.FormatDate(w.from),
		EndDate:   biztime.FormatDate(w.to),
		Days:      w.days(),
	}
}

func resolvePeriod(query PeriodQuery, today time.Time) (window, error) {
	if query.From != nil || query.To != nil {
		if query.From == nil || query.To == nil {
			return window{}, errors.NewValidationError("both start_date and end_date are required for a custom range")
		}
		from, to := biztime.Normalize(*query.From), biztime.Normalize(*query.To)
		if to.Before(from) {
			return window{}, errors.NewValidationError("end date must not be before start date")
		}
		return window{name: "custom", from: from, to: to}, nil
	}

	name := query.Period
	if name == "" {
		name = PeriodMonth
	}
	n, ok := periodDays[name]
	if !ok {
		return window{}, errors.NewValidationError(fmt.Sprintf("invalid period %q", query.Period), "expected week, month or year")
	}
	from, to := analytics.LastNDays(today, n)
	return window{name: name, from: from, to: to}, nil
}
