package usecases

import (
	"context"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/logger"
)

type DeleteAttendanceUseCase struct {
	attendanceRepo attendance.Repository
	gate           authorization.Gate
	logger         logger.Interface
}

func NewDeleteAttendanceUseCase(attendanceRepo attendance.Repository, gate authorization.Gate, logger logger.Interface) *DeleteAttendanceUseCase {
	return &DeleteAttendanceUseCase{
		attendanceRepo: attendanceRepo,
		gate:           gate,
		logger:         logger,
	}
}

func (uc *DeleteAttendanceUseCase) Execute(ctx context.Context, id uint, actor authorization.Actor) error {
	if err := authorization.RequireAdminister(uc.gate, actor, "delete attendance"); err != nil {
		return err
	}
	if err := uc.attendanceRepo.Delete(ctx, id); err != nil {
		uc.logger.Warnw("failed to delete attendance record", "error", err, "attendance_id", id)
		return err
	}
	uc.logger.Infow("attendance record deleted", "attendance_id", id, "staff_id", actor.StaffID)
	return nil
}
