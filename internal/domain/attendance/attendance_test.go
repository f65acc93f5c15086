package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/shared/biztime"
)

func init() {
	biztime.MustInit("America/Mexico_City")
}

func TestNewCheckIn_DateFollowsBusinessDay(t *testing.T) {
	// 03:30 UTC on Mar 2 is still Mar 1 in Mexico City.
	now := time.Date(2025, 3, 2, 3, 30, 0, 0, time.UTC)
	subID := uint(9)

	a, err := NewCheckIn(4, &subID, now, "")
	require.NoError(t, err)
	assert.True(t, a.IsOpen())
	assert.Equal(t, biztime.NewDate(2025, 3, 1), a.Date())
	assert.Equal(t, uint(9), *a.SubscriptionID())

	_, err = NewCheckIn(0, nil, now, "")
	assert.Error(t, err)
}

func TestCheckOut_DurationTruncatesToMinutes(t *testing.T) {
	in := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	a, err := NewCheckIn(4, nil, in, "morning")
	require.NoError(t, err)

	require.NoError(t, a.CheckOut(in.Add(75*time.Minute+59*time.Second), ""))
	assert.False(t, a.IsOpen())
	require.NotNil(t, a.DurationMinutes())
	assert.Equal(t, 75, *a.DurationMinutes())
	assert.Equal(t, "morning", a.Notes())
}

func TestCheckOut_Twice(t *testing.T) {
	in := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	a, err := NewCheckIn(4, nil, in, "")
	require.NoError(t, err)
	require.NoError(t, a.CheckOut(in.Add(time.Hour), "done"))
	assert.Equal(t, "done", a.Notes())

	err = a.CheckOut(in.Add(2*time.Hour), "")
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	assert.Equal(t, 60, *a.DurationMinutes())
	assert.ErrorIs(t, a.ClosedError(), ErrAlreadyCheckedOut)
}

func TestCheckOut_DurationMatchesStoredInstants(t *testing.T) {
	// Both instants lose their sub-millisecond part, as DATETIME(3) does.
	in := time.Date(2025, 3, 1, 13, 0, 0, 900_000, time.UTC)
	a, err := NewCheckIn(4, nil, in, "")
	require.NoError(t, err)
	assert.Nil(t, a.ClosedError())

	require.NoError(t, a.CheckOut(time.Date(2025, 3, 1, 13, 45, 0, 500_000, time.UTC), ""))
	assert.Equal(t, time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC), a.CheckInTime())
	assert.Equal(t, time.Date(2025, 3, 1, 13, 45, 0, 0, time.UTC), *a.CheckOutTime())

	stored := int(a.CheckOutTime().Sub(a.CheckInTime()) / time.Minute)
	assert.Equal(t, 45, stored)
	assert.Equal(t, stored, *a.DurationMinutes())
}

func TestCheckOut_BeforeCheckIn(t *testing.T) {
	in := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	a, err := NewCheckIn(4, nil, in, "")
	require.NoError(t, err)
	assert.ErrorIs(t, a.CheckOut(in.Add(-time.Minute), ""), ErrCheckOutBeforeIn)
	assert.True(t, a.IsOpen())
}
