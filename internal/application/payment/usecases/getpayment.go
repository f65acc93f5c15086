package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/payment"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type GetPaymentUseCase struct {
	paymentRepo payment.Repository
	logger      logger.Interface
}

func NewGetPaymentUseCase(paymentRepo payment.Repository, logger logger.Interface) *GetPaymentUseCase {
	return &GetPaymentUseCase{paymentRepo: paymentRepo, logger: logger}
}

func (uc *GetPaymentUseCase) Execute(ctx context.Context, paymentID uint) (*payment.Payment, error) {
	p, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		uc.logger.Errorw("failed to get payment", "error", err, "payment_id", paymentID)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("payment not found", fmt.Sprintf("payment_id=%d", paymentID))
	}
	return p, nil
}
