package usecases

import (
	"context"
	"strings"
	"time"

	"f3manager/internal/domain/member"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

// UpdateMemberCommand carries the fields to change. Nil fields are kept.
type UpdateMemberCommand struct {
	MemberID         uint
	FirstName        *string
	LastNamePaternal *string
	LastNameMaternal *string
	Phone            *string
	Email            *string
	BirthDate        *time.Time
	EmergencyContact *string
	EmergencyPhone   *string
	PhotoURL         *string
	Active           *bool
}

type UpdateMemberUseCase struct {
	memberRepo member.Repository
	clock      biztime.Clock
	minimumAge int
	logger     logger.Interface
}

func NewUpdateMemberUseCase(memberRepo member.Repository, clock biztime.Clock, minimumAge int, logger logger.Interface) *UpdateMemberUseCase {
	return &UpdateMemberUseCase{
		memberRepo: memberRepo,
		clock:      clock,
		minimumAge: minimumAge,
		logger:     logger,
	}
}

func (uc *UpdateMemberUseCase) Execute(ctx context.Context, cmd UpdateMemberCommand) (*member.Member, error) {
	patch := member.Patch{
		FirstName:        normalizeOptional(cmd.FirstName, utils.NormalizePersonName),
		LastNamePaternal: normalizeOptional(cmd.LastNamePaternal, utils.NormalizePersonName),
		LastNameMaternal: normalizeOptional(cmd.LastNameMaternal, utils.NormalizePersonName),
		Phone:            normalizeOptional(cmd.Phone, normalizePhone),
		Email:            normalizeOptional(cmd.Email, utils.NormalizeEmail),
		BirthDate:        cmd.BirthDate,
		EmergencyContact: normalizeOptional(cmd.EmergencyContact, utils.NormalizePersonName),
		EmergencyPhone:   normalizeOptional(cmd.EmergencyPhone, normalizePhone),
		PhotoURL:         normalizeOptional(cmd.PhotoURL, strings.TrimSpace),
		Active:           cmd.Active,
	}
	if patch.IsEmpty() {
		return nil, errors.NewValidationError("no fields to update")
	}

	m, err := loadMember(ctx, uc.memberRepo, cmd.MemberID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != m.Email() {
		if err := ensureEmailFree(ctx, uc.memberRepo, *patch.Email, m.ID()); err != nil {
			return nil, err
		}
	}

	policy := member.Policy{Today: uc.clock.Today(), MinimumAge: uc.minimumAge}
	if err := m.ApplyPatch(patch, policy, uc.clock.Now()); err != nil {
		return nil, validationError(err)
	}

	if err := uc.memberRepo.Update(ctx, m); err != nil {
		uc.logger.Warnw("failed to update member", "error", err, "member_id", m.ID())
		return nil, err
	}

	uc.logger.Infow("member updated", "member_id", m.ID(), "active", m.IsActive())
	return m, nil
}
