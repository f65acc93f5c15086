package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/application/attendance/dto"
	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/member"
	"f3manager/internal/shared/logger"
)

type GetAttendanceUseCase struct {
	attendanceRepo attendance.Repository
	memberRepo     member.Repository
	logger         logger.Interface
}

func NewGetAttendanceUseCase(attendanceRepo attendance.Repository, memberRepo member.Repository, logger logger.Interface) *GetAttendanceUseCase {
	return &GetAttendanceUseCase{
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		logger:         logger,
	}
}

func (uc *GetAttendanceUseCase) Execute(ctx context.Context, id uint) (*dto.AttendanceDTO, error) {
	record, err := loadAttendance(ctx, uc.attendanceRepo, id)
	if err != nil {
		return nil, err
	}
	m, err := uc.memberRepo.GetByID(ctx, record.MemberID())
	if err != nil {
		uc.logger.Errorw("failed to get attendance member", "error", err, "member_id", record.MemberID())
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return dto.ToAttendanceDTO(record, m), nil
}

func renderWithMembers(ctx context.Context, repo member.Repository, records []*attendance.Attendance) ([]*dto.AttendanceDTO, error) {
	ids := make([]uint, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.MemberID())
	}
	members, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	return dto.ToAttendanceDTOList(records, members), nil
}
