package handlers

import (
	"context"

	dashboarddto "f3manager/internal/application/dashboard/dto"
	dashboardUsecases "f3manager/internal/application/dashboard/usecases"
)

type dashboardUseCase interface {
	Summary(ctx context.Context, query dashboardUsecases.SummaryQuery) (*dashboarddto.SummaryDTO, error)
	Metrics(ctx context.Context) (*dashboarddto.MetricsDTO, error)
	PaymentMetrics(ctx context.Context) (*dashboarddto.PaymentMetricsDTO, error)
	Expiring(ctx context.Context, days int) ([]dashboarddto.ExpiringDTO, error)
	RecentCheckIns(ctx context.Context, limit int) ([]dashboarddto.RecentCheckInDTO, error)
	RecentPayments(ctx context.Context, limit int) ([]dashboarddto.RecentPaymentDTO, error)
	WeeklyAttendance(ctx context.Context) ([]dashboarddto.DailyPointDTO, error)
	WeeklyIncome(ctx context.Context) ([]dashboarddto.DailyPointDTO, error)
	PlanMetrics(ctx context.Context) ([]dashboarddto.PlanMetricDTO, error)
}
