package usecases

import (
	"context"
	"fmt"
	"time"

	"f3manager/internal/application/payment/dto"
	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/payment"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

// GetPaymentSummaryQuery bounds the summary by payment date. Missing bounds
// default to the current month up to today.
type GetPaymentSummaryQuery struct {
	From *time.Time
	To   *time.Time
}

type GetPaymentSummaryUseCase struct {
	paymentRepo payment.Repository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewGetPaymentSummaryUseCase(paymentRepo payment.Repository, clock biztime.Clock, logger logger.Interface) *GetPaymentSummaryUseCase {
	return &GetPaymentSummaryUseCase{
		paymentRepo: paymentRepo,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *GetPaymentSummaryUseCase) Execute(ctx context.Context, query GetPaymentSummaryQuery) (*dto.PaymentSummaryDTO, error) {
	today := uc.clock.Today()
	from := biztime.StartOfMonth(today)
	to := today
	if query.From != nil {
		from = biztime.Normalize(*query.From)
	}
	if query.To != nil {
		to = biztime.Normalize(*query.To)
	}
	if to.Before(from) {
		return nil, errors.NewValidationError("end date must not be before start date")
	}

	payments, err := uc.paymentRepo.ListBetween(ctx, from, to)
	if err != nil {
		uc.logger.Errorw("failed to load payments for summary", "error", err)
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	return &dto.PaymentSummaryDTO{
		From:     biztime.FormatDate(from),
		To:       biztime.FormatDate(to),
		Total:    analytics.TotalIncome(payments).Number(),
		Count:    int64(len(payments)),
		ByMethod: dto.ToMethodTotalDTOList(analytics.SummarizeByMethod(payments)),
	}, nil
}
