package mappers

import (
	"time"

	"gorm.io/datatypes"

	"f3manager/internal/shared/biztime"
)

func toDate(t time.Time) datatypes.Date {
	return datatypes.Date(biztime.Normalize(t))
}

func fromDate(d datatypes.Date) time.Time {
	return biztime.Normalize(time.Time(d))
}

func toDatePtr(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := toDate(*t)
	return &d
}

func fromDatePtr(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := fromDate(*d)
	return &t
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
