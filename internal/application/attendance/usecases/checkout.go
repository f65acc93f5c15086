package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/infrastructure/metrics"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type CheckOutCommand struct {
	AttendanceID uint
	Notes        string
}

type CheckOutUseCase struct {
	attendanceRepo attendance.Repository
	clock          biztime.Clock
	logger         logger.Interface
}

func NewCheckOutUseCase(attendanceRepo attendance.Repository, clock biztime.Clock, logger logger.Interface) *CheckOutUseCase {
	return &CheckOutUseCase{
		attendanceRepo: attendanceRepo,
		clock:          clock,
		logger:         logger,
	}
}

// Execute closes an open visit, recording its duration in whole minutes.
func (uc *CheckOutUseCase) Execute(ctx context.Context, cmd CheckOutCommand) (*attendance.Attendance, error) {
	record, err := loadAttendance(ctx, uc.attendanceRepo, cmd.AttendanceID)
	if err != nil {
		return nil, err
	}

	if err := record.CheckOut(uc.clock.Now(), utils.SanitizeText(cmd.Notes)); err != nil {
		if stderrors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return nil, errors.NewPreconditionFailedError(err.Error(), fmt.Sprintf("attendance_id=%d", record.ID()))
		}
		return nil, errors.NewValidationError(err.Error())
	}

	closed, err := uc.attendanceRepo.CheckOut(ctx, record)
	if err != nil {
		uc.logger.Errorw("failed to check out", "error", err, "attendance_id", record.ID())
		return nil, err
	}
	if !closed {
		return nil, uc.closedMeanwhile(ctx, record.ID())
	}

	metrics.RecordCheckOut(*record.DurationMinutes())
	uc.logger.Infow("member checked out",
		"attendance_id", record.ID(),
		"member_id", record.MemberID(),
		"duration_minutes", *record.DurationMinutes(),
	)
	return record, nil
}

func loadAttendance(ctx context.Context, repo attendance.Repository, id uint) (*attendance.Attendance, error) {
	record, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError(attendance.ErrAttendanceNotFound.Error(), fmt.Sprintf("attendance_id=%d", id))
	}
	return record, nil
}

// closedMeanwhile reports a visit that another check-out closed between the
// load and the write, naming the check-out that won.
func (uc *CheckOutUseCase) closedMeanwhile(ctx context.Context, id uint) error {
	current, err := loadAttendance(ctx, uc.attendanceRepo, id)
	if err != nil {
		return err
	}
	uc.logger.Warnw("attendance closed by a concurrent check-out", "attendance_id", id)

	cause := current.ClosedError()
	if cause == nil {
		cause = attendance.ErrAlreadyCheckedOut
	}
	return errors.NewPreconditionFailedError(cause.Error(), fmt.Sprintf("attendance_id=%d", id))
}
