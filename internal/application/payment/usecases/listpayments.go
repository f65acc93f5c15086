package usecases

import (
	"context"
	"fmt"
	"time"

	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	vo "f3manager/internal/domain/payment/valueobjects"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type ListPaymentsQuery struct {
	MemberID       *uint
	SubscriptionID *uint
	Method         string
	From           *time.Time
	To             *time.Time
	Skip           int
	Limit          int
}

type ListPaymentsResult struct {
	Payments []*payment.Payment
	Total    int64
}

type ListPaymentsUseCase struct {
	paymentRepo payment.Repository
	memberRepo  member.Repository
	logger      logger.Interface
}

func NewListPaymentsUseCase(paymentRepo payment.Repository, memberRepo member.Repository, logger logger.Interface) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		logger:      logger,
	}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, query ListPaymentsQuery) (*ListPaymentsResult, error) {
	filter := payment.ListFilter{
		MemberID:       query.MemberID,
		SubscriptionID: query.SubscriptionID,
		Skip:           query.Skip,
		Limit:          query.Limit,
	}
	if query.Method != "" {
		pm, err := vo.NewPaymentMethod(query.Method)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Method = &pm
	}
	if query.From != nil {
		from := biztime.Normalize(*query.From)
		filter.From = &from
	}
	if query.To != nil {
		to := biztime.Normalize(*query.To)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, errors.NewValidationError("end date must not be before start date")
	}

	payments, total, err := uc.paymentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list payments", "error", err)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &ListPaymentsResult{Payments: payments, Total: total}, nil
}

// MemberHistory lists every payment of a member, newest first.
func (uc *ListPaymentsUseCase) MemberHistory(ctx context.Context, memberID uint) ([]*payment.Payment, error) {
	m, err := uc.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError("member not found", fmt.Sprintf("member_id=%d", memberID))
	}

	payments, _, err := uc.paymentRepo.List(ctx, payment.ListFilter{MemberID: &memberID})
	if err != nil {
		uc.logger.Errorw("failed to list member payments", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("failed to list member payments: %w", err)
	}
	return payments, nil
}
