package attendance

import (
	"errors"
	"fmt"
	"time"

	"f3manager/internal/shared/biztime"
)

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedOut  = errors.New("attendance already checked out")
	ErrCheckOutBeforeIn   = errors.New("check-out time is before check-in time")
)

// Attendance is one gym visit. It is open until checked out. The
// subscription link is a soft reference to whatever was current at check-in.
type Attendance struct {
	id              uint
	memberID        uint
	subscriptionID  *uint
	checkInTime     time.Time
	checkOutTime    *time.Time
	date            time.Time
	durationMinutes *int
	notes           string
	createdAt       time.Time
}

// storedPrecision matches the DATETIME(3) columns; durations are derived from
// the instants as they will be read back.
const storedPrecision = time.Millisecond

// NewCheckIn opens a visit at now. The visit date is the business-day of now.
func NewCheckIn(memberID uint, subscriptionID *uint, now time.Time, notes string) (*Attendance, error) {
	if memberID == 0 {
		return nil, fmt.Errorf("member ID is required")
	}
	return &Attendance{
		memberID:       memberID,
		subscriptionID: subscriptionID,
		checkInTime:    now.UTC().Truncate(storedPrecision),
		date:           biztime.DateOf(now),
		notes:          notes,
		createdAt:      now.UTC(),
	}, nil
}

// ReconstructAttendance reconstructs an attendance record from persistence
func ReconstructAttendance(
	id, memberID uint,
	subscriptionID *uint,
	checkInTime time.Time,
	checkOutTime *time.Time,
	date time.Time,
	durationMinutes *int,
	notes string,
	createdAt time.Time,
) (*Attendance, error) {
	if id == 0 {
		return nil, fmt.Errorf("attendance ID cannot be zero")
	}
	return &Attendance{
		id:              id,
		memberID:        memberID,
		subscriptionID:  subscriptionID,
		checkInTime:     checkInTime,
		checkOutTime:    checkOutTime,
		date:            date,
		durationMinutes: durationMinutes,
		notes:           notes,
		createdAt:       createdAt,
	}, nil
}

func (a *Attendance) ID() uint                 { return a.id }
func (a *Attendance) MemberID() uint           { return a.memberID }
func (a *Attendance) SubscriptionID() *uint    { return a.subscriptionID }
func (a *Attendance) CheckInTime() time.Time   { return a.checkInTime }
func (a *Attendance) CheckOutTime() *time.Time { return a.checkOutTime }
func (a *Attendance) Date() time.Time          { return a.date }
func (a *Attendance) DurationMinutes() *int    { return a.durationMinutes }
func (a *Attendance) Notes() string            { return a.notes }
func (a *Attendance) CreatedAt() time.Time     { return a.createdAt }

func (a *Attendance) IsOpen() bool {
	return a.checkOutTime == nil
}

// CheckOut closes the visit at now. The duration is the elapsed time
// truncated to whole minutes. Non-empty notes replace the check-in notes.
func (a *Attendance) CheckOut(now time.Time, notes string) error {
	if !a.IsOpen() {
		return a.closedError()
	}
	now = now.UTC().Truncate(storedPrecision)
	if now.Before(a.checkInTime) {
		return ErrCheckOutBeforeIn
	}
	minutes := int(now.Sub(a.checkInTime) / time.Minute)
	a.checkOutTime = &now
	a.durationMinutes = &minutes
	if notes != "" {
		a.notes = notes
	}
	return nil
}

// ClosedError reports the check-out that already closed the visit, or nil
// while it is open.
func (a *Attendance) ClosedError() error {
	if a.IsOpen() {
		return nil
	}
	return a.closedError()
}

func (a *Attendance) closedError() error {
	return fmt.Errorf("%w at %s", ErrAlreadyCheckedOut, biztime.FormatClock(*a.checkOutTime))
}

// SetID sets the attendance ID after persistence
func (a *Attendance) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attendance ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attendance ID cannot be zero")
	}
	a.id = id
	return nil
}
