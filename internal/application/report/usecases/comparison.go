package usecases

import (
	"context"
	"fmt"
	"time"

	"f3manager/internal/application/report/dto"
	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/logger"
)

type monthFigures struct {
	from, to         time.Time
	incomeCents      int64
	visits           int64
	newMembers       int64
	newSubscriptions int64
}

func (f monthFigures) dto() dto.MonthFiguresDTO {
	return dto.MonthFiguresDTO{
		StartDate:        biztime.FormatDate(f.from),
		EndDate:          biztime.FormatDate(f.to),
		Income:           sharedvo.NewMoney(f.incomeCents).Number(),
		Visits:           f.visits,
		NewMembers:       f.newMembers,
		NewSubscriptions: f.newSubscriptions,
	}
}

type GetMonthlyComparisonUseCase struct {
	memberRepo       member.Repository
	subscriptionRepo subscription.Repository
	paymentRepo      payment.Repository
	attendanceRepo   attendance.Repository
	txManager        db.Transactor
	clock            biztime.Clock
	logger           logger.Interface
}

func NewGetMonthlyComparisonUseCase(
	memberRepo member.Repository,
	subscriptionRepo subscription.Repository,
	paymentRepo payment.Repository,
	attendanceRepo attendance.Repository,
	txManager db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *GetMonthlyComparisonUseCase {
	return &GetMonthlyComparisonUseCase{
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		attendanceRepo:   attendanceRepo,
		txManager:        txManager,
		clock:            clock,
		logger:           logger,
	}
}

// Execute compares the current month to date with the whole previous month.
func (uc *GetMonthlyComparisonUseCase) Execute(ctx context.Context) (*dto.MonthlyComparisonDTO, error) {
	today := uc.clock.Today()
	monthStart := biztime.StartOfMonth(today)
	prevEnd := biztime.AddDays(monthStart, -1)

	var current, previous monthFigures
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) (err error) {
		if current, err = uc.figures(ctx, monthStart, today); err != nil {
			return err
		}
		previous, err = uc.figures(ctx, biztime.StartOfMonth(prevEnd), prevEnd)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to build monthly comparison", "error", err)
		return nil, err
	}

	return &dto.MonthlyComparisonDTO{
		Current:  current.dto(),
		Previous: previous.dto(),
		Growth: dto.GrowthDTO{
			Income:           analytics.Growth(current.incomeCents, previous.incomeCents),
			Visits:           analytics.Growth(current.visits, previous.visits),
			NewMembers:       analytics.Growth(current.newMembers, previous.newMembers),
			NewSubscriptions: analytics.Growth(current.newSubscriptions, previous.newSubscriptions),
		},
	}, nil
}

func (uc *GetMonthlyComparisonUseCase) figures(ctx context.Context, from, to time.Time) (monthFigures, error) {
	f := monthFigures{from: from, to: to}

	payments, err := uc.paymentRepo.ListBetween(ctx, from, to)
	if err != nil {
		return f, fmt.Errorf("failed to list payments: %w", err)
	}
	f.incomeCents = analytics.TotalIncome(payments).Cents()

	records, err := uc.attendanceRepo.ListBetween(ctx, from, to)
	if err != nil {
		return f, fmt.Errorf("failed to list attendance: %w", err)
	}
	f.visits = int64(len(records))

	if f.newMembers, err = uc.memberRepo.CountRegisteredBetween(ctx, from, to); err != nil {
		return f, fmt.Errorf("failed to count new members: %w", err)
	}

	started, err := uc.subscriptionRepo.ListStartedBetween(ctx, from, to)
	if err != nil {
		return f, fmt.Errorf("failed to list new subscriptions: %w", err)
	}
	f.newSubscriptions = int64(len(started))
	return f, nil
}
