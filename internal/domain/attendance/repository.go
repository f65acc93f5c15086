package attendance

import (
	"context"
	"time"
)

// ListFilter narrows attendance listings; date bounds are inclusive civil dates.
type ListFilter struct {
	MemberID *uint
	From     *time.Time
	To       *time.Time
	OpenOnly bool
	Skip     int
	Limit    int
}

type Repository interface {
	Create(ctx context.Context, a *Attendance) error
	// CheckOut stores a's check-out only while the stored visit is still
	// open. It reports false when another check-out closed it first.
	CheckOut(ctx context.Context, a *Attendance) (bool, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]*Attendance, int64, error)

	// FindOpenForMember returns the member's latest visit without check-out, or nil.
	FindOpenForMember(ctx context.Context, memberID uint) (*Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Attendance, error)
	ListOpenOnDate(ctx context.Context, date time.Time) ([]*Attendance, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*Attendance, error)
	ListRecent(ctx context.Context, limit int) ([]*Attendance, error)
	CountByDate(ctx context.Context, date time.Time) (int64, error)
	ClearSubscription(ctx context.Context, subscriptionID uint) error
}
