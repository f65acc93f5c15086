package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/infrastructure/metrics"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

const (
	rejectInactiveMember = "inactive_member"
	rejectNoSubscription = "no_subscription"
	rejectAlreadyPresent = "already_checked_in"
	rejectUnknownMember  = "unknown_member"
)

type CheckInCommand struct {
	MemberID uint
	Notes    string
}

type CheckInUseCase struct {
	memberRepo       member.Repository
	subscriptionRepo subscription.Repository
	attendanceRepo   attendance.Repository
	txManager        db.Transactor
	clock            biztime.Clock
	logger           logger.Interface
}

func NewCheckInUseCase(
	memberRepo member.Repository,
	subscriptionRepo subscription.Repository,
	attendanceRepo attendance.Repository,
	txManager db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *CheckInUseCase {
	return &CheckInUseCase{
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		attendanceRepo:   attendanceRepo,
		txManager:        txManager,
		clock:            clock,
		logger:           logger,
	}
}

// Execute opens a visit for a member holding a subscription that covers
// today. The member lock keeps the open-visit check and the insert atomic.
func (uc *CheckInUseCase) Execute(ctx context.Context, cmd CheckInCommand) (*attendance.Attendance, error) {
	now := uc.clock.Now()
	today := uc.clock.Today()

	var (
		record *attendance.Attendance
		reason string
	)
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		m, err := uc.memberRepo.LockByID(ctx, cmd.MemberID)
		if err != nil {
			return fmt.Errorf("failed to lock member: %w", err)
		}
		if m == nil {
			reason = rejectUnknownMember
			return errors.NewNotFoundError(member.ErrMemberNotFound.Error(), fmt.Sprintf("member_id=%d", cmd.MemberID))
		}
		if !m.IsActive() {
			reason = rejectInactiveMember
			return errors.NewPreconditionFailedError(member.ErrMemberInactive.Error(), fmt.Sprintf("member_id=%d", m.ID()))
		}

		sub, err := uc.subscriptionRepo.FindCurrentForMember(ctx, m.ID(), today, 0)
		if err != nil {
			return fmt.Errorf("failed to find current subscription: %w", err)
		}
		if sub == nil {
			reason = rejectNoSubscription
			return errors.NewValidationError("member has no active subscription", fmt.Sprintf("member_id=%d", m.ID()))
		}

		open, err := uc.attendanceRepo.FindOpenForMember(ctx, m.ID())
		if err != nil {
			return fmt.Errorf("failed to find open visit: %w", err)
		}
		if open != nil {
			reason = rejectAlreadyPresent
			return errors.NewConflictError(
				fmt.Sprintf("member already checked in at %s", biztime.FormatClock(open.CheckInTime())),
				fmt.Sprintf("attendance_id=%d", open.ID()),
			)
		}

		subID := sub.ID()
		if record, err = attendance.NewCheckIn(m.ID(), &subID, now, utils.SanitizeText(cmd.Notes)); err != nil {
			return errors.NewValidationError(err.Error())
		}
		return uc.attendanceRepo.Create(ctx, record)
	})
	if err != nil {
		if reason != "" {
			metrics.RecordCheckInRejected(reason)
		}
		uc.logger.Warnw("check-in rejected", "error", err, "member_id", cmd.MemberID, "reason", reason)
		return nil, err
	}

	metrics.RecordCheckIn()
	uc.logger.Infow("member checked in",
		"attendance_id", record.ID(),
		"member_id", record.MemberID(),
		"subscription_id", *record.SubscriptionID(),
		"check_in", biztime.FormatClock(record.CheckInTime()),
	)
	return record, nil
}
