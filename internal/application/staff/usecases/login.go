package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"f3manager/internal/application/staff/dto"
	"f3manager/internal/domain/staff"
	"f3manager/internal/infrastructure/auth"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type TokenIssuer interface {
	Generate(actor authorization.Actor) (*auth.Token, error)
}

type LoginCommand struct {
	Username string
	Password string
}

type LoginResult struct {
	User        *dto.StaffDTO
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

type LoginUseCase struct {
	staffRepo staff.Repository
	hasher    staff.PasswordHasher
	tokens    TokenIssuer
	clock     biztime.Clock
	logger    logger.Interface
}

func NewLoginUseCase(
	staffRepo staff.Repository,
	hasher staff.PasswordHasher,
	tokens TokenIssuer,
	clock biztime.Clock,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		staffRepo: staffRepo,
		hasher:    hasher,
		tokens:    tokens,
		clock:     clock,
		logger:    logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("username and password are required")
	}

	user, err := uc.staffRepo.GetByUsername(ctx, username)
	if err != nil {
		uc.logger.Errorw("failed to get staff user", "error", err, "username", username)
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	// Unknown users and bad passwords share one message.
	if user == nil {
		uc.logger.Warnw("login failed", "username", username, "reason", "unknown user")
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := user.Authenticate(cmd.Password, uc.hasher, uc.clock.Now()); err != nil {
		switch {
		case stderrors.Is(err, staff.ErrStaffInactive):
			uc.logger.Warnw("login failed", "username", username, "error", err)
			return nil, errors.NewAccountInactiveError()
		case stderrors.Is(err, staff.ErrInvalidCredential):
			uc.logger.Warnw("login failed", "username", username, "error", err)
		default:
			uc.logger.Errorw("stored password hash cannot be verified", "error", err, "staff_id", user.ID())
		}
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := uc.staffRepo.Update(ctx, user); err != nil {
		uc.logger.Warnw("failed to record last login", "error", err, "staff_id", user.ID())
	}

	token, err := uc.tokens.Generate(user.Actor())
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "error", err, "staff_id", user.ID())
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	uc.logger.Infow("staff logged in", "staff_id", user.ID(), "username", user.Username(), "role", user.Role())
	return &LoginResult{
		User:        dto.ToStaffDTO(user),
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
	}, nil
}
