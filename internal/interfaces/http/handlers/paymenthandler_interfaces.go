package handlers

import (
	"context"

	paymentdto "f3manager/internal/application/payment/dto"
	paymentUsecases "f3manager/internal/application/payment/usecases"
	"f3manager/internal/domain/payment"
)

// Use case interfaces for PaymentHandler

type recordPaymentUseCase interface {
	Execute(ctx context.Context, cmd paymentUsecases.RecordPaymentCommand) (*payment.Payment, error)
}

type getPaymentUseCase interface {
	Execute(ctx context.Context, paymentID uint) (*payment.Payment, error)
}

type listPaymentsUseCase interface {
	Execute(ctx context.Context, query paymentUsecases.ListPaymentsQuery) (*paymentUsecases.ListPaymentsResult, error)
}

type updatePaymentUseCase interface {
	Execute(ctx context.Context, cmd paymentUsecases.UpdatePaymentCommand) (*payment.Payment, error)
}

type deletePaymentUseCase interface {
	Execute(ctx context.Context, cmd paymentUsecases.DeletePaymentCommand) error
}

type paymentSummaryUseCase interface {
	Execute(ctx context.Context, query paymentUsecases.GetPaymentSummaryQuery) (*paymentdto.PaymentSummaryDTO, error)
}
