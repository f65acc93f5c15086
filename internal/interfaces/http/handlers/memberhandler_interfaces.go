package handlers

import (
	"context"

	attendancedto "f3manager/internal/application/attendance/dto"
	memberdto "f3manager/internal/application/member/dto"
	memberUsecases "f3manager/internal/application/member/usecases"
	subdto "f3manager/internal/application/subscription/dto"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	"f3manager/internal/shared/authorization"
)

// Use case interfaces for MemberHandler

type createMemberUseCase interface {
	Execute(ctx context.Context, in memberUsecases.ProfileInput) (*member.Member, error)
}

type getMemberUseCase interface {
	Detail(ctx context.Context, memberID uint) (*memberdto.MemberDetailDTO, error)
}

type listMembersUseCase interface {
	Execute(ctx context.Context, query memberUsecases.ListMembersQuery) (*memberUsecases.ListMembersResult, error)
}

type updateMemberUseCase interface {
	Execute(ctx context.Context, cmd memberUsecases.UpdateMemberCommand) (*member.Member, error)
}

type deactivateMemberUseCase interface {
	Execute(ctx context.Context, memberID uint) error
}

type purgeMemberUseCase interface {
	Execute(ctx context.Context, memberID uint, actor authorization.Actor) error
}

type activeSubscriptionUseCase interface {
	ActiveForMember(ctx context.Context, memberID uint) (*subdto.SubscriptionDTO, error)
}

type memberPaymentsUseCase interface {
	MemberHistory(ctx context.Context, memberID uint) ([]*payment.Payment, error)
}

type memberAttendanceUseCase interface {
	History(ctx context.Context, memberID uint, days int) ([]*attendancedto.AttendanceDTO, error)
}
