package usecases

import (
	"context"
	"fmt"
	"time"

	"f3manager/internal/application/attendance/dto"
	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/member"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/constants"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type ListAttendanceQuery struct {
	MemberID *uint
	From     *time.Time
	To       *time.Time
	OpenOnly bool
	Skip     int
	Limit    int
}

type ListAttendanceResult struct {
	Records []*dto.AttendanceDTO
	Total   int64
}

type ListAttendanceUseCase struct {
	attendanceRepo attendance.Repository
	memberRepo     member.Repository
	clock          biztime.Clock
	historyDays    int
	logger         logger.Interface
}

func NewListAttendanceUseCase(
	attendanceRepo attendance.Repository,
	memberRepo member.Repository,
	clock biztime.Clock,
	historyDays int,
	logger logger.Interface,
) *ListAttendanceUseCase {
	if historyDays <= 0 {
		historyDays = constants.DefaultHistoryDays
	}
	return &ListAttendanceUseCase{
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		clock:          clock,
		historyDays:    historyDays,
		logger:         logger,
	}
}

// Execute pages visits by check-in time, newest first.
func (uc *ListAttendanceUseCase) Execute(ctx context.Context, query ListAttendanceQuery) (*ListAttendanceResult, error) {
	filter := attendance.ListFilter{
		MemberID: query.MemberID,
		OpenOnly: query.OpenOnly,
		Skip:     query.Skip,
		Limit:    query.Limit,
	}
	if query.From != nil {
		from := biztime.Normalize(*query.From)
		filter.From = &from
	}
	if query.To != nil {
		to := biztime.Normalize(*query.To)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, errors.NewValidationError("end date must not be before start date")
	}

	records, total, err := uc.attendanceRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list attendance", "error", err)
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	dtos, err := renderWithMembers(ctx, uc.memberRepo, records)
	if err != nil {
		return nil, err
	}
	return &ListAttendanceResult{Records: dtos, Total: total}, nil
}

// History lists a member's visits over the last days days, falling back to
// the configured window when days is not positive.
func (uc *ListAttendanceUseCase) History(ctx context.Context, memberID uint, days int) ([]*dto.AttendanceDTO, error) {
	m, err := uc.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError(member.ErrMemberNotFound.Error(), fmt.Sprintf("member_id=%d", memberID))
	}

	if days <= 0 {
		days = uc.historyDays
	}
	from, to := analytics.LastNDays(uc.clock.Today(), days)
	records, _, err := uc.attendanceRepo.List(ctx, attendance.ListFilter{MemberID: &memberID, From: &from, To: &to})
	if err != nil {
		uc.logger.Errorw("failed to load member attendance", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("failed to load member attendance: %w", err)
	}
	return dto.ToAttendanceDTOList(records, map[uint]*member.Member{m.ID(): m}), nil
}

type ListCurrentlyPresentUseCase struct {
	attendanceRepo attendance.Repository
	memberRepo     member.Repository
	clock          biztime.Clock
	logger         logger.Interface
}

func NewListCurrentlyPresentUseCase(
	attendanceRepo attendance.Repository,
	memberRepo member.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *ListCurrentlyPresentUseCase {
	return &ListCurrentlyPresentUseCase{
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		clock:          clock,
		logger:         logger,
	}
}

// Execute lists today's visits without check-out.
func (uc *ListCurrentlyPresentUseCase) Execute(ctx context.Context) ([]*dto.AttendanceDTO, error) {
	records, err := uc.attendanceRepo.ListOpenOnDate(ctx, uc.clock.Today())
	if err != nil {
		uc.logger.Errorw("failed to list present members", "error", err)
		return nil, fmt.Errorf("failed to list present members: %w", err)
	}
	return renderWithMembers(ctx, uc.memberRepo, records)
}

type GetDailyStatsUseCase struct {
	attendanceRepo attendance.Repository
	clock          biztime.Clock
	logger         logger.Interface
}

func NewGetDailyStatsUseCase(attendanceRepo attendance.Repository, clock biztime.Clock, logger logger.Interface) *GetDailyStatsUseCase {
	return &GetDailyStatsUseCase{
		attendanceRepo: attendanceRepo,
		clock:          clock,
		logger:         logger,
	}
}

// Execute summarizes a day, today when date is nil.
func (uc *GetDailyStatsUseCase) Execute(ctx context.Context, date *time.Time) (*dto.DailyStatsDTO, error) {
	today := uc.clock.Today()
	day := today
	if date != nil {
		day = biztime.Normalize(*date)
	}

	records, err := uc.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		uc.logger.Errorw("failed to load daily attendance", "error", err, "date", biztime.FormatDate(day))
		return nil, fmt.Errorf("failed to load daily attendance: %w", err)
	}
	return dto.ToDailyStatsDTO(analytics.ComputeDailyStats(day, today, records)), nil
}
