package usecases

import (
	"context"
	"fmt"
	"time"

	"f3manager/internal/application/dashboard/dto"
	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/constants"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

// Settings carries the dashboard defaults taken from the membership config.
type Settings struct {
	ExpiringDays int
	Locale       string
}

type SummaryQuery struct {
	ExpiringDays int
	RecentLimit  int
}

// DashboardUseCase renders the front-desk dashboard. Each section is
// computed from repository snapshots taken inside one read transaction.
type DashboardUseCase struct {
	memberRepo       member.Repository
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.Repository
	paymentRepo      payment.Repository
	attendanceRepo   attendance.Repository
	txManager        db.Transactor
	clock            biztime.Clock
	settings         Settings
	weekdays         analytics.WeekdayNames
	logger           logger.Interface
}

func NewDashboardUseCase(
	memberRepo member.Repository,
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.Repository,
	paymentRepo payment.Repository,
	attendanceRepo attendance.Repository,
	txManager db.Transactor,
	clock biztime.Clock,
	settings Settings,
	logger logger.Interface,
) *DashboardUseCase {
	if settings.ExpiringDays <= 0 {
		settings.ExpiringDays = constants.DefaultExpiringDays
	}
	return &DashboardUseCase{
		memberRepo:       memberRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		attendanceRepo:   attendanceRepo,
		txManager:        txManager,
		clock:            clock,
		settings:         settings,
		weekdays:         analytics.WeekdaysFor(settings.Locale),
		logger:           logger,
	}
}

func (uc *DashboardUseCase) Summary(ctx context.Context, query SummaryQuery) (*dto.SummaryDTO, error) {
	days, err := uc.expiringDays(query.ExpiringDays)
	if err != nil {
		return nil, err
	}
	limit, err := recentLimit(query.RecentLimit)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	summary := &dto.SummaryDTO{Date: biztime.FormatDate(today)}
	err = uc.read(ctx, func(ctx context.Context) error {
		metrics, err := uc.metrics(ctx, today)
		if err != nil {
			return err
		}
		summary.Metrics = *metrics

		payments, err := uc.paymentMetrics(ctx, today)
		if err != nil {
			return err
		}
		summary.Payments = *payments

		if summary.Expiring, err = uc.expiring(ctx, today, days); err != nil {
			return err
		}
		if summary.RecentCheckIns, err = uc.recentCheckIns(ctx, today, limit); err != nil {
			return err
		}
		if summary.RecentPayments, err = uc.recentPayments(ctx, today, limit); err != nil {
			return err
		}
		if summary.WeeklyAttendance, err = uc.weeklyAttendance(ctx, today); err != nil {
			return err
		}
		if summary.WeeklyIncome, err = uc.weeklyIncome(ctx, today); err != nil {
			return err
		}
		summary.Plans, err = uc.planMetrics(ctx, today)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (uc *DashboardUseCase) Metrics(ctx context.Context) (*dto.MetricsDTO, error) {
	var out *dto.MetricsDTO
	err := uc.read(ctx, func(ctx context.Context) (err error) {
		out, err = uc.metrics(ctx, uc.clock.Today())
		return err
	})
	return out, err
}

func (uc *DashboardUseCase) PaymentMetrics(ctx context.Context) (*dto.PaymentMetricsDTO, error) {
	var out *dto.PaymentMetricsDTO
	err := uc.read(ctx, func(ctx context.Context) (err error) {
		out, err = uc.paymentMetrics(ctx, uc.clock.Today())
		return err
	})
	return out, err
}

// Expiring lists current subscriptions ending within days, defaulting to
// the configured window when days is zero.
func (uc *DashboardUseCase) Expiring(ctx context.Context, days int) ([]dto.ExpiringDTO, error) {
	days, err := uc.expiringDays(days)
	if err != nil {
		return nil, err
	}
	var out []dto.ExpiringDTO
	err = uc.read(ctx, func(ctx context.Context) (err error) {
		out, err = uc.expiring(ctx, uc.clock.Today(), days)
		return err
	})
	return out, err
}

func (uc *DashboardUseCase) RecentCheckIns(ctx context.Context, limit int) ([]dto.RecentCheckInDTO, error) {
	limit, err := recentLimit(limit)
	if err != nil {
		return nil, err
	}
	var out []dto.RecentCheckInDTO
	err = uc.read(ctx, func(ctx context.Context) (err error) {
		out, err = uc.recentCheckIns(ctx, uc.clock.Today(), limit)
		return err
	})
	return out, err
}

func (uc *DashboardUseCase) RecentPayments(ctx context.Context, limit int) ([]dto.RecentPaymentDTO, error) {
	limit, err := recentLimit(limit)
	if err != nil {
		return nil, err
	}
	var out []dto.RecentPaymentDTO
	err = uc.read(ctx, func(ctx context.Context) (err error) {
		out, err = uc.recentPayments(ctx, uc.clock.Today(), limit)
		return err
	})
	return out, err
}

func (uc *DashboardUseCase) WeeklyAttendance(ctx context.Context) ([]dto.DailyPointDTO, error) {
	return uc.weeklyAttendance(ctx, uc.clock.Today())
}

func (uc *DashboardUseCase) WeeklyIncome(ctx context.Context) ([]dto.DailyPointDTO, error) {
	return uc.weeklyIncome(ctx, uc.clock.Today())
}

func (uc *DashboardUseCase) PlanMetrics(ctx context.Context) ([]dto.PlanMetricDTO, error) {
	var out []dto.PlanMetricDTO
	err := uc.read(ctx, func(ctx context.Context) (err error) {
		out, err = uc.planMetrics(ctx, uc.clock.Today())
		return err
	})
	return out, err
}

func (uc *DashboardUseCase) read(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := uc.txManager.RunInTransaction(ctx, fn); err != nil {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("failed to build dashboard", "error", err)
		}
		return err
	}
	return nil
}

func (uc *DashboardUseCase) expiringDays(days int) (int, error) {
	if days == 0 {
		return uc.settings.ExpiringDays, nil
	}
	if days < 1 || days > constants.MaxExpiringDays {
		return 0, errors.NewValidationError(fmt.Sprintf("days must be between 1 and %d", constants.MaxExpiringDays))
	}
	return days, nil
}

func recentLimit(limit int) (int, error) {
	if limit == 0 {
		return constants.DefaultRecentFeedLimit, nil
	}
	if limit < 1 || limit > constants.MaxRecentFeedLimit {
		return 0, errors.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", constants.MaxRecentFeedLimit))
	}
	return limit, nil
}

func (uc *DashboardUseCase) metrics(ctx context.Context, today time.Time) (*dto.MetricsDTO, error) {
	open, err := uc.attendanceRepo.ListOpenOnDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list open visits: %w", err)
	}
	visits, err := uc.attendanceRepo.CountByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count visits: %w", err)
	}
	activeMembers, err := uc.memberRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}
	current, err := uc.subscriptionRepo.ListCurrent(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list current subscriptions: %w", err)
	}
	return &dto.MetricsDTO{
		PresentNow:          int64(len(open)),
		TodayVisits:         visits,
		ActiveMembers:       activeMembers,
		ActiveSubscriptions: int64(len(current)),
	}, nil
}

func (uc *DashboardUseCase) paymentMetrics(ctx context.Context, today time.Time) (*dto.PaymentMetricsDTO, error) {
	month, err := uc.paymentRepo.ListBetween(ctx, biztime.StartOfMonth(today), today)
	if err != nil {
		return nil, fmt.Errorf("failed to list month payments: %w", err)
	}
	current, err := uc.subscriptionRepo.ListCurrent(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list current subscriptions: %w", err)
	}

	var todayCount, pendingAccounts int64
	for _, p := range month {
		if p.PaymentDate().Equal(today) {
			todayCount++
		}
	}
	for _, s := range current {
		if s.PaymentStatus() != vo.PaymentStatusPaid && s.Balance().IsPositive() {
			pendingAccounts++
		}
	}

	return &dto.PaymentMetricsDTO{
		TodayIncome:     analytics.IncomeOn(month, today).Number(),
		TodayPayments:   todayCount,
		MonthIncome:     analytics.TotalIncome(month).Number(),
		MonthPayments:   int64(len(month)),
		PendingBalance:  analytics.PendingBalance(current).Number(),
		PendingAccounts: pendingAccounts,
	}, nil
}

func (uc *DashboardUseCase) expiring(ctx context.Context, today time.Time, days int) ([]dto.ExpiringDTO, error) {
	subs, err := uc.subscriptionRepo.ListEndingBetween(ctx, today, biztime.AddDays(today, days))
	if err != nil {
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
	return dto.ToExpiringDTOList(items, members, plans), nil
}

func (uc *DashboardUseCase) recentCheckIns(ctx context.Context, today time.Time, limit int) ([]dto.RecentCheckInDTO, error) {
	records, err := uc.attendanceRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent check-ins: %w", err)
	}
	ids := make([]uint, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.MemberID())
	}
	members, current, err := uc.standing(ctx, ids, today)
	if err != nil {
		return nil, err
	}

	feed := make([]dto.RecentCheckInDTO, 0, len(records))
	for _, r := range records {
		item := dto.RecentCheckInDTO{
			AttendanceID: r.ID(),
			MemberID:     r.MemberID(),
			CheckInTime:  r.CheckInTime(),
			CheckOutTime: r.CheckOutTime(),
			Status:       string(analytics.ClassifyHealth(current[r.MemberID()], today)),
		}
		if m := members[r.MemberID()]; m != nil {
			item.MemberName = m.FullName()
		}
		feed = append(feed, item)
	}
	return feed, nil
}

func (uc *DashboardUseCase) recentPayments(ctx context.Context, today time.Time, limit int) ([]dto.RecentPaymentDTO, error) {
	payments, err := uc.paymentRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent payments: %w", err)
	}
	memberIDs := make([]uint, 0, len(payments))
	subIDs := make([]uint, 0, len(payments))
	for _, p := range payments {
		memberIDs = append(memberIDs, p.MemberID())
		subIDs = append(subIDs, p.SubscriptionID())
	}
	members, current, err := uc.standing(ctx, memberIDs, today)
	if err != nil {
		return nil, err
	}
	subs, err := uc.subscriptionRepo.GetByIDs(ctx, subIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	planIDs := make([]uint, 0, len(subs))
	for _, s := range subs {
		planIDs = append(planIDs, s.PlanID())
	}
	plans, err := uc.planRepo.GetByIDs(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}

	feed := make([]dto.RecentPaymentDTO, 0, len(payments))
	for _, p := range payments {
		item := dto.RecentPaymentDTO{
			PaymentID:   p.ID(),
			MemberID:    p.MemberID(),
			Amount:      p.Amount().Number(),
			Method:      p.Method().String(),
			PaymentDate: biztime.FormatDate(p.PaymentDate()),
			Status:      string(analytics.ClassifyHealth(current[p.MemberID()], today)),
		}
		if m := members[p.MemberID()]; m != nil {
			item.MemberName = m.FullName()
		}
		if s := subs[p.SubscriptionID()]; s != nil {
			if plan := plans[s.PlanID()]; plan != nil {
				item.PlanName = plan.Name()
			}
		}
		feed = append(feed, item)
	}
	return feed, nil
}

// standing loads the members behind a feed together with the subscription
// currently covering each of them.
func (uc *DashboardUseCase) standing(
	ctx context.Context,
	memberIDs []uint,
	today time.Time,
) (map[uint]*member.Member, map[uint]*subscription.Subscription, error) {
	members, err := uc.memberRepo.GetByIDs(ctx, memberIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load members: %w", err)
	}
	current, err := uc.subscriptionRepo.ListCurrentForMembers(ctx, memberIDs, today)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load current subscriptions: %w", err)
	}
	return members, current, nil
}

func (uc *DashboardUseCase) weeklyAttendance(ctx context.Context, today time.Time) ([]dto.DailyPointDTO, error) {
	from, to := analytics.LastNDays(today, constants.DefaultSeriesDays)
	records, err := uc.attendanceRepo.ListBetween(ctx, from, to)
	if err != nil {
		uc.logger.Errorw("failed to load weekly attendance", "error", err)
		return nil, fmt.Errorf("failed to load weekly attendance: %w", err)
	}
	return dto.ToAttendanceSeries(analytics.BuildDailySeries(from, to, uc.weekdays, analytics.AttendanceFacts(records))), nil
}

func (uc *DashboardUseCase) weeklyIncome(ctx context.Context, today time.Time) ([]dto.DailyPointDTO, error) {
	from, to := analytics.LastNDays(today, constants.DefaultSeriesDays)
	payments, err := uc.paymentRepo.ListBetween(ctx, from, to)
	if err != nil {
		uc.logger.Errorw("failed to load weekly income", "error", err)
		return nil, fmt.Errorf("failed to load weekly income: %w", err)
	}
	return dto.ToIncomeSeries(analytics.BuildDailySeries(from, to, uc.weekdays, analytics.PaymentFacts(payments))), nil
}

func (uc *DashboardUseCase) planMetrics(ctx context.Context, today time.Time) ([]dto.PlanMetricDTO, error) {
	plans, _, err := uc.planRepo.List(ctx, subscription.PlanListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	current, err := uc.subscriptionRepo.ListCurrent(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list current subscriptions: %w", err)
	}
	return dto.ToPlanMetricDTOList(analytics.CountActiveByPlan(plans, current, today)), nil
}
