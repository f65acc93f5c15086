package usecases

import (
	"context"
	"fmt"

	"f3manager/internal/domain/member"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type CreateMemberUseCase struct {
	memberRepo member.Repository
	clock      biztime.Clock
	minimumAge int
	logger     logger.Interface
}

func NewCreateMemberUseCase(memberRepo member.Repository, clock biztime.Clock, minimumAge int, logger logger.Interface) *CreateMemberUseCase {
	return &CreateMemberUseCase{
		memberRepo: memberRepo,
		clock:      clock,
		minimumAge: minimumAge,
		logger:     logger,
	}
}

// Execute registers a member today. Emails are unique when present.
func (uc *CreateMemberUseCase) Execute(ctx context.Context, in ProfileInput) (*member.Member, error) {
	profile := in.normalize()

	m, err := member.NewMember(profile, member.Policy{Today: uc.clock.Today(), MinimumAge: uc.minimumAge}, uc.clock.Now())
	if err != nil {
		return nil, validationError(err)
	}

	if err := ensureEmailFree(ctx, uc.memberRepo, m.Email(), 0); err != nil {
		return nil, err
	}

	if err := uc.memberRepo.Create(ctx, m); err != nil {
		uc.logger.Warnw("failed to create member", "error", err)
		return nil, err
	}

	uc.logger.Infow("member registered",
		"member_id", m.ID(),
		"registered_on", biztime.FormatDate(m.RegisteredOn()),
	)
	return m, nil
}

func ensureEmailFree(ctx context.Context, repo member.Repository, email string, selfID uint) error {
	if email == "" {
		return nil
	}
	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check member email: %w", err)
	}
	if existing != nil && existing.ID() != selfID {
		return errors.NewConflictError("a member with this email already exists",
			fmt.Sprintf("member_id=%d", existing.ID()))
	}
	return nil
}
