package handlers

import (
	"context"

	reportdto "f3manager/internal/application/report/dto"
	reportUsecases "f3manager/internal/application/report/usecases"
)

type reportSummaryUseCase interface {
	Execute(ctx context.Context, query reportUsecases.PeriodQuery) (*reportdto.SummaryDTO, error)
}

type retentionReportUseCase interface {
	Execute(ctx context.Context, query reportUsecases.PeriodQuery) (*reportdto.RetentionDTO, error)
}

type monthlyComparisonUseCase interface {
	Execute(ctx context.Context) (*reportdto.MonthlyComparisonDTO, error)
}
