package usecases

import (
	"context"
	"fmt"

	paymentdto "f3manager/internal/application/payment/dto"
	"f3manager/internal/application/report/dto"
	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/constants"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/logger"
)

type GetReportSummaryUseCase struct {
	memberRepo       member.Repository
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.Repository
	paymentRepo      payment.Repository
	attendanceRepo   attendance.Repository
	txManager        db.Transactor
	clock            biztime.Clock
	logger           logger.Interface
}

func NewGetReportSummaryUseCase(
	memberRepo member.Repository,
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.Repository,
	paymentRepo payment.Repository,
	attendanceRepo attendance.Repository,
	txManager db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *GetReportSummaryUseCase {
	return &GetReportSummaryUseCase{
		memberRepo:       memberRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		attendanceRepo:   attendanceRepo,
		txManager:        txManager,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *GetReportSummaryUseCase) Execute(ctx context.Context, query PeriodQuery) (*dto.SummaryDTO, error) {
	today := uc.clock.Today()
	w, err := resolvePeriod(query, today)
	if err != nil {
		return nil, err
	}

	summary := &dto.SummaryDTO{PeriodDTO: w.dto()}
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		income, err := uc.income(ctx, w)
		if err != nil {
			return err
		}
		summary.Income = *income

		if summary.NewMembers, err = uc.memberRepo.CountRegisteredBetween(ctx, w.from, w.to); err != nil {
			return fmt.Errorf("failed to count new members: %w", err)
		}

		visits, err := uc.attendance(ctx, w)
		if err != nil {
			return err
		}
		summary.Attendance = *visits

		r, err := retention(ctx, uc.memberRepo, uc.subscriptionRepo, w, today)
		if err != nil {
			return err
		}
		summary.Retention = dto.ToRetentionDTO(summary.PeriodDTO, r)
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to build report summary", "error", err, "period", w.name)
		return nil, err
	}

	uc.logger.Debugw("report summary built",
		"period", w.name,
		"start_date", summary.StartDate,
		"end_date", summary.EndDate,
		"payments", summary.Income.PaymentCount,
	)
	return summary, nil
}

func (uc *GetReportSummaryUseCase) income(ctx context.Context, w window) (*dto.IncomeDTO, error) {
	payments, err := uc.paymentRepo.ListBetween(ctx, w.from, w.to)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	subIDs := make([]uint, 0, len(payments))
	for _, p := range payments {
		subIDs = append(subIDs, p.SubscriptionID())
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

	return &dto.IncomeDTO{
		Total:        analytics.TotalIncome(payments).Number(),
		PaymentCount: int64(len(payments)),
		ByPlan:       dto.ToPlanIncomeDTOList(analytics.IncomeByPlan(payments, subs, plans)),
		ByMethod:     paymentdto.ToMethodTotalDTOList(analytics.SummarizeByMethod(payments)),
	}, nil
}

func (uc *GetReportSummaryUseCase) attendance(ctx context.Context, w window) (*dto.AttendanceDTO, error) {
	records, err := uc.attendanceRepo.ListBetween(ctx, w.from, w.to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	top := analytics.TopMembers(records, constants.DefaultTopMembersLimit)
	ids := make([]uint, 0, len(top))
	for _, t := range top {
		ids = append(ids, t.MemberID)
	}
	members, err := uc.memberRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	total := int64(len(records))
	return &dto.AttendanceDTO{
		Total:      total,
		DailyAvg:   analytics.Ratio(total, int64(w.days())),
		TopMembers: dto.ToTopMemberDTOList(top, members),
	}, nil
}
