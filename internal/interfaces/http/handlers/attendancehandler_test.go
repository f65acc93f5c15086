package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendancedto "f3manager/internal/application/attendance/dto"
	attendanceUsecases "f3manager/internal/application/attendance/usecases"
	"f3manager/internal/domain/attendance"
	"f3manager/internal/interfaces/http/handlers/testutil"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
)

type mockCheckInUC struct {
	result *attendance.Attendance
	err    error
	got    attendanceUsecases.CheckInCommand
}

func (m *mockCheckInUC) Execute(ctx context.Context, cmd attendanceUsecases.CheckInCommand) (*attendance.Attendance, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCheckOutUC struct {
	result *attendance.Attendance
	err    error
	got    attendanceUsecases.CheckOutCommand
}

func (m *mockCheckOutUC) Execute(ctx context.Context, cmd attendanceUsecases.CheckOutCommand) (*attendance.Attendance, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListAttendanceUC struct {
	got attendanceUsecases.ListAttendanceQuery
}

func (m *mockListAttendanceUC) Execute(ctx context.Context, q attendanceUsecases.ListAttendanceQuery) (*attendanceUsecases.ListAttendanceResult, error) {
	m.got = q
	return &attendanceUsecases.ListAttendanceResult{Records: []*attendancedto.AttendanceDTO{}}, nil
}

type mockDailyStatsUC struct {
	got *time.Time
}

func (m *mockDailyStatsUC) Execute(ctx context.Context, date *time.Time) (*attendancedto.DailyStatsDTO, error) {
	m.got = date
	return &attendancedto.DailyStatsDTO{}, nil
}

type mockDeleteAttendanceUC struct {
	actor authorization.Actor
}

func (m *mockDeleteAttendanceUC) Execute(ctx context.Context, id uint, actor authorization.Actor) error {
	m.actor = actor
	return nil
}

func newTestAttendance(t *testing.T, id uint, checkedOut bool) *attendance.Attendance {
	t.Helper()
	subID := uint(10)
	checkIn := handlerToday
	var checkOut *time.Time
	var minutes *int
	if checkedOut {
		out := checkIn.Add(75 * time.Minute)
		m := 75
		checkOut, minutes = &out, &m
	}
	a, err := attendance.ReconstructAttendance(id, 1, &subID, checkIn, checkOut, biztime.DateOf(checkIn), minutes, "", checkIn)
	require.NoError(t, err)
	return a
}

func newTestAttendanceHandler(checkIn checkInUseCase, checkOut checkOutUseCase) *AttendanceHandler {
	return NewAttendanceHandler(checkIn, checkOut, nil, nil, nil, nil, nil, testutil.NewMockLogger())
}

func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	mockUC := &mockCheckInUC{result: newTestAttendance(t, 7, false)}
	handler := newTestAttendanceHandler(mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/attendance/check-in", CheckInRequest{MemberID: 1})

	handler.CheckIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(1), mockUC.got.MemberID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data attendancedto.AttendanceDTO
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, uint(7), data.ID)
	assert.True(t, data.IsOpen)
	assert.Nil(t, data.CheckOutTime)
}

func TestAttendanceHandler_CheckIn_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no active subscription", errors.NewPreconditionFailedError("member has no active subscription"), http.StatusPreconditionFailed},
		{"already checked in", errors.NewConflictError("member is already checked in"), http.StatusConflict},
		{"unknown member", errors.NewNotFoundError("member not found"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAttendanceHandler(&mockCheckInUC{err: tt.err}, nil)
			c, w := testutil.NewTestContext(http.MethodPost, "/attendance/check-in", CheckInRequest{MemberID: 1})

			handler.CheckIn(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAttendanceHandler_CheckIn_MissingMember(t *testing.T) {
	handler := newTestAttendanceHandler(&mockCheckInUC{}, nil)
	c, w := testutil.NewTestContext(http.MethodPost, "/attendance/check-in", `{}`)

	handler.CheckIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandler_CheckOut(t *testing.T) {
	mockUC := &mockCheckOutUC{result: newTestAttendance(t, 7, true)}
	handler := newTestAttendanceHandler(nil, mockUC)

	c, w := testutil.NewTestContext(http.MethodPost, "/attendance/7/check-out", nil)
	testutil.SetURLParam(c, "id", "7")

	handler.CheckOut(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), mockUC.got.AttendanceID)
	assert.Contains(t, w.Body.String(), `"duration_minutes":75`)
	assert.Contains(t, w.Body.String(), `"is_open":false`)
}

func TestAttendanceHandler_ListAttendance_Filters(t *testing.T) {
	mockUC := &mockListAttendanceUC{}
	handler := NewAttendanceHandler(nil, nil, nil, mockUC, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/attendance", nil)
	testutil.SetQueryParams(c, map[string]string{
		"member_id": "3",
		"from":      "2024-03-01",
		"to":        "2024-03-15",
		"open_only": "true",
	})

	handler.ListAttendance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got.MemberID)
	assert.Equal(t, uint(3), *mockUC.got.MemberID)
	require.NotNil(t, mockUC.got.From)
	assert.Equal(t, "2024-03-01", biztime.FormatDate(*mockUC.got.From))
	assert.True(t, mockUC.got.OpenOnly)
}

func TestAttendanceHandler_ListAttendance_BadDate(t *testing.T) {
	handler := NewAttendanceHandler(nil, nil, nil, &mockListAttendanceUC{}, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/attendance?from=yesterday", nil)

	handler.ListAttendance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandler_GetDailyStats(t *testing.T) {
	mockUC := &mockDailyStatsUC{}
	handler := NewAttendanceHandler(nil, nil, nil, nil, nil, mockUC, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/attendance/stats", nil)
	handler.GetDailyStats(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockUC.got)

	c, w = testutil.NewTestContext(http.MethodGet, "/attendance/stats?date=2024-03-10", nil)
	handler.GetDailyStats(c)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got)
	assert.Equal(t, 10, mockUC.got.Day())
}

func TestAttendanceHandler_DeleteAttendance(t *testing.T) {
	mockUC := &mockDeleteAttendanceUC{}
	handler := NewAttendanceHandler(nil, nil, nil, nil, nil, nil, mockUC, testutil.NewMockLogger())

	c, _ := testutil.NewTestContext(http.MethodDelete, "/attendance/7", nil)
	testutil.SetURLParam(c, "id", "7")
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	handler.DeleteAttendance(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, uint(1), mockUC.actor.StaffID)
}
