package usecases

import (
	"context"
	"fmt"
	"strings"

	"f3manager/internal/application/staff/dto"
	"f3manager/internal/domain/staff"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

type RegisterStaffCommand struct {
	Username string
	Email    string
	FullName string
	Role     string
	Password string
	Actor    authorization.Actor
}

type RegisterStaffUseCase struct {
	staffRepo staff.Repository
	hasher    staff.PasswordHasher
	gate      authorization.Gate
	clock     biztime.Clock
	logger    logger.Interface
}

func NewRegisterStaffUseCase(
	staffRepo staff.Repository,
	hasher staff.PasswordHasher,
	gate authorization.Gate,
	clock biztime.Clock,
	logger logger.Interface,
) *RegisterStaffUseCase {
	return &RegisterStaffUseCase{
		staffRepo: staffRepo,
		hasher:    hasher,
		gate:      gate,
		clock:     clock,
		logger:    logger,
	}
}

// Execute creates a staff account on behalf of an administrator.
func (uc *RegisterStaffUseCase) Execute(ctx context.Context, cmd RegisterStaffCommand) (*dto.StaffDTO, error) {
	if err := authorization.RequireAdminister(uc.gate, cmd.Actor, "register staff"); err != nil {
		return nil, err
	}
	return uc.create(ctx, cmd)
}

// Bootstrap creates an account from the command line, where no signed-in
// actor exists.
func (uc *RegisterStaffUseCase) Bootstrap(ctx context.Context, cmd RegisterStaffCommand) (*dto.StaffDTO, error) {
	return uc.create(ctx, cmd)
}

func (uc *RegisterStaffUseCase) create(ctx context.Context, cmd RegisterStaffCommand) (*dto.StaffDTO, error) {
	role := authorization.UserRole(strings.ToLower(strings.TrimSpace(cmd.Role)))
	if role == "" {
		role = authorization.RoleOperator
	}

	existing, err := uc.staffRepo.GetByUsername(ctx, strings.TrimSpace(cmd.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("username already registered", existing.Username())
	}

	user, err := staff.NewUser(cmd.Username, cmd.Email, utils.SanitizeText(cmd.FullName), role, cmd.Password, uc.hasher, uc.clock.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.staffRepo.Create(ctx, user); err != nil {
		uc.logger.Errorw("failed to create staff user", "error", err, "username", user.Username())
		return nil, err
	}

	uc.logger.Infow("staff user registered",
		"staff_id", user.ID(),
		"username", user.Username(),
		"role", user.Role(),
		"by", cmd.Actor.StaffID,
	)
	return dto.ToStaffDTO(user), nil
}
