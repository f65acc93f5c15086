package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/infrastructure/email"
	"f3manager/internal/infrastructure/metrics"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/constants"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

const (
	reminderSent    = "sent"
	reminderFailed  = "failed"
	reminderSkipped = "skipped"
)

type ReminderSender interface {
	SendExpiryReminder(r email.Reminder) error
}

type SendRemindersCommand struct {
	Days   int
	DryRun bool
}

type SendRemindersResult struct {
	Candidates int
	Sent       int
	Failed     int
	// Skipped counts members without an email address.
	Skipped int
}

type SendExpiryRemindersUseCase struct {
	memberRepo       member.Repository
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.Repository
	sender           ReminderSender
	clock            biztime.Clock
	defaultDays      int
	logger           logger.Interface
}

func NewSendExpiryRemindersUseCase(
	memberRepo member.Repository,
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.Repository,
	sender ReminderSender,
	clock biztime.Clock,
	defaultDays int,
	logger logger.Interface,
) *SendExpiryRemindersUseCase {
	if defaultDays <= 0 {
		defaultDays = constants.DefaultExpiringDays
	}
	return &SendExpiryRemindersUseCase{
		memberRepo:       memberRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		sender:           sender,
		clock:            clock,
		defaultDays:      defaultDays,
		logger:           logger,
	}
}

// Execute emails every member whose current subscription ends within the
// window. A failed send is counted and does not stop the run.
func (uc *SendExpiryRemindersUseCase) Execute(ctx context.Context, cmd SendRemindersCommand) (*SendRemindersResult, error) {
	days := cmd.Days
	if days == 0 {
		days = uc.defaultDays
	}
	if days < 1 || days > constants.MaxExpiringDays {
		return nil, errors.NewValidationError(fmt.Sprintf("days must be between 1 and %d", constants.MaxExpiringDays))
	}

	today := uc.clock.Today()
	subs, err := uc.subscriptionRepo.ListEndingBetween(ctx, today, biztime.AddDays(today, days))
	if err != nil {
		uc.logger.Errorw("failed to list expiring subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list expiring subscriptions: %w", err)
	}
	items := analytics.SelectExpiringSoon(subs, today, days)

	memberIDs := make([]uint, 0, len(items))
	planIDs := make([]uint, 0, len(items))
	for _, item := range items {
		memberIDs = append(memberIDs, item.Subscription.MemberID())
		planIDs = append(planIDs, item.Subscription.PlanID())
	}
	members, err := uc.memberRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	plans, err := uc.planRepo.GetByIDs(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}

	result := &SendRemindersResult{Candidates: len(items)}
	for _, item := range items {
		s := item.Subscription
		m := members[s.MemberID()]
		if m == nil || m.Email() == "" || !m.IsActive() {
			result.Skipped++
			metrics.RecordReminder(reminderSkipped)
			continue
		}

		reminder := email.Reminder{
			To:         m.Email(),
			MemberName: m.FirstName(),
			EndDate:    biztime.FormatDate(s.EndDate()),
			DaysLeft:   item.DaysRemaining,
		}
		if p := plans[s.PlanID()]; p != nil {
			reminder.PlanName = p.Name()
		}

		if cmd.DryRun {
			uc.logger.Infow("reminder not sent (dry run)", "member_id", m.ID(), "to", utils.MaskEmail(m.Email()), "days_left", item.DaysRemaining)
			result.Sent++
			continue
		}
		if err := uc.sender.SendExpiryReminder(reminder); err != nil {
			result.Failed++
			metrics.RecordReminder(reminderFailed)
			uc.logger.Warnw("failed to send expiry reminder", "error", err, "member_id", m.ID(), "subscription_id", s.ID())
			continue
		}
		result.Sent++
		metrics.RecordReminder(reminderSent)
	}

	uc.logger.Infow("expiry reminders processed",
		"days", days,
		"candidates", result.Candidates,
		"sent", result.Sent,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}
