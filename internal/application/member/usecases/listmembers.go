package usecases

import (
	"context"
	"fmt"
	"strings"

	"f3manager/internal/domain/member"
	"f3manager/internal/shared/logger"
)

type ListMembersQuery struct {
	Search     string
	ActiveOnly bool
	Skip       int
	Limit      int
}

type ListMembersResult struct {
	Members []*member.Member
	Total   int64
}

type ListMembersUseCase struct {
	memberRepo member.Repository
	logger     logger.Interface
}

func NewListMembersUseCase(memberRepo member.Repository, logger logger.Interface) *ListMembersUseCase {
	return &ListMembersUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, query ListMembersQuery) (*ListMembersResult, error) {
	members, total, err := uc.memberRepo.List(ctx, member.ListFilter{
		Search:     strings.TrimSpace(query.Search),
		ActiveOnly: query.ActiveOnly,
		Skip:       query.Skip,
		Limit:      query.Limit,
	})
	if err != nil {
		uc.logger.Errorw("failed to list members", "error", err, "search", query.Search)
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return &ListMembersResult{Members: members, Total: total}, nil
}
