package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/payment"
	vo "f3manager/internal/domain/payment/valueobjects"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

// UpdatePaymentCommand patches descriptive fields. Amount and date are
// immutable, so no reconciliation is needed.
type UpdatePaymentCommand struct {
	PaymentID uint
	Method    *string
	Reference *string
	Notes     *string
}

type UpdatePaymentUseCase struct {
	paymentRepo payment.Repository
	clock       biztime.Clock
	logger      logger.Interface
}

func NewUpdatePaymentUseCase(paymentRepo payment.Repository, clock biztime.Clock, logger logger.Interface) *UpdatePaymentUseCase {
	return &UpdatePaymentUseCase{
		paymentRepo: paymentRepo,
		clock:       clock,
		logger:      logger,
	}
}

func (uc *UpdatePaymentUseCase) Execute(ctx context.Context, cmd UpdatePaymentCommand) (*payment.Payment, error) {
	patch := payment.Patch{
		Reference: cmd.Reference,
		Notes:     utils.SanitizeOptional(cmd.Notes),
	}
	if cmd.Method != nil {
		pm, err := vo.NewPaymentMethod(*cmd.Method)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		patch.Method = &pm
	}
	if patch.IsEmpty() {
		return nil, errors.NewValidationError("at least one field must be provided for update")
	}

	p, err := uc.paymentRepo.GetByID(ctx, cmd.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if p == nil {
		return nil, errors.NewNotFoundError("payment not found", fmt.Sprintf("payment_id=%d", cmd.PaymentID))
	}

	if err := p.ApplyPatch(patch, uc.clock.Now()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update payment", "error", err, "payment_id", p.ID())
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	uc.logger.Infow("payment updated", "payment_id", p.ID())
	return p, nil
}
