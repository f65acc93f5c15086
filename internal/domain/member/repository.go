package member

import (
	"context"
	"time"
)

// ListFilter narrows member listings. Search matches name parts, email and phone.
type ListFilter struct {
	Search     string
	ActiveOnly bool
	Skip       int
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uint) (*Member, error)
	// LockByID loads the member with a row lock held until the surrounding
	// transaction ends. Per-member invariant checks run under this lock.
	LockByID(ctx context.Context, id uint) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*Member, error)
	List(ctx context.Context, filter ListFilter) ([]*Member, int64, error)
	// Purge deletes the member together with its subscriptions, payments
	// and attendance records.
	Purge(ctx context.Context, id uint) error
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountRegisteredBetween(ctx context.Context, from, to time.Time) (int64, error)
}
