package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/application/staff/dto"
	"f3manager/internal/domain/staff"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type GetStaffUseCase struct {
	staffRepo staff.Repository
	gate      authorization.Gate
	logger    logger.Interface
}

func NewGetStaffUseCase(staffRepo staff.Repository, gate authorization.Gate, logger logger.Interface) *GetStaffUseCase {
	return &GetStaffUseCase{
		staffRepo: staffRepo,
		gate:      gate,
		logger:    logger,
	}
}

// Me returns the account behind the signed-in actor.
func (uc *GetStaffUseCase) Me(ctx context.Context, actor authorization.Actor) (*dto.StaffDTO, error) {
	user, err := uc.staffRepo.GetByID(ctx, actor.StaffID)
	if err != nil {
		uc.logger.Errorw("failed to get staff user", "error", err, "staff_id", actor.StaffID)
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError(staff.ErrStaffNotFound.Error(), fmt.Sprintf("staff_id=%d", actor.StaffID))
	}
	return dto.ToStaffDTO(user), nil
}

func (uc *GetStaffUseCase) List(ctx context.Context, actor authorization.Actor) ([]*dto.StaffDTO, error) {
	if err := authorization.RequireAdminister(uc.gate, actor, "list staff"); err != nil {
		return nil, err
	}
	users, err := uc.staffRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list staff users", "error", err)
		return nil, fmt.Errorf("failed to list staff users: %w", err)
	}
	return dto.ToStaffDTOList(users), nil
}
