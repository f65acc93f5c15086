package handlers

import (
	"context"
	"time"

	attendancedto "f3manager/internal/application/attendance/dto"
	attendanceUsecases "f3manager/internal/application/attendance/usecases"
	"f3manager/internal/domain/attendance"
	"f3manager/internal/shared/authorization"
)

// Use case interfaces for AttendanceHandler

type checkInUseCase interface {
	Execute(ctx context.Context, cmd attendanceUsecases.CheckInCommand) (*attendance.Attendance, error)
}

type checkOutUseCase interface {
	Execute(ctx context.Context, cmd attendanceUsecases.CheckOutCommand) (*attendance.Attendance, error)
}

type getAttendanceUseCase interface {
	Execute(ctx context.Context, id uint) (*attendancedto.AttendanceDTO, error)
}

type listAttendanceUseCase interface {
	Execute(ctx context.Context, query attendanceUsecases.ListAttendanceQuery) (*attendanceUsecases.ListAttendanceResult, error)
}

type currentlyPresentUseCase interface {
	Execute(ctx context.Context) ([]*attendancedto.AttendanceDTO, error)
}

type dailyStatsUseCase interface {
	Execute(ctx context.Context, date *time.Time) (*attendancedto.DailyStatsDTO, error)
}

type deleteAttendanceUseCase interface {
	Execute(ctx context.Context, id uint, actor authorization.Actor) error
}
