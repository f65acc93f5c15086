package usecases

import (
	"context"
	"fmt"
	"time"

	"f3manager/internal/application/report/dto"
	"f3manager/internal/domain/analytics"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/logger"
)

type GetRetentionReportUseCase struct {
	memberRepo       member.Repository
	subscriptionRepo subscription.Repository
	txManager        db.Transactor
	clock            biztime.Clock
	logger           logger.Interface
}

func NewGetRetentionReportUseCase(
	memberRepo member.Repository,
	subscriptionRepo subscription.Repository,
	txManager db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *GetRetentionReportUseCase {
	return &GetRetentionReportUseCase{
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *GetRetentionReportUseCase) Execute(ctx context.Context, query PeriodQuery) (*dto.RetentionDTO, error) {
	today := uc.clock.Today()
	w, err := resolvePeriod(query, today)
	if err != nil {
		return nil, err
	}

	var r analytics.Retention
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) (err error) {
		r, err = retention(ctx, uc.memberRepo, uc.subscriptionRepo, w, today)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to compute retention", "error", err, "period", w.name)
		return nil, err
	}

	out := dto.ToRetentionDTO(w.dto(), r)
	return &out, nil
}

// retention loads the subscriptions that can affect the rates: those
// current today and those ending inside the window.
func retention(
	ctx context.Context,
	memberRepo member.Repository,
	subscriptionRepo subscription.Repository,
	w window,
	today time.Time,
) (analytics.Retention, error) {
	total, err := memberRepo.CountAll(ctx)
	if err != nil {
		return analytics.Retention{}, fmt.Errorf("failed to count members: %w", err)
	}
	current, err := subscriptionRepo.ListCurrent(ctx, today)
	if err != nil {
		return analytics.Retention{}, fmt.Errorf("failed to list current subscriptions: %w", err)
	}
	ended, err := subscriptionRepo.ListEndingBetween(ctx, w.from, w.to)
	if err != nil {
		return analytics.Retention{}, fmt.Errorf("failed to list ended subscriptions: %w", err)
	}

	seen := make(map[uint]struct{}, len(current)+len(ended))
	subs := make([]*subscription.Subscription, 0, len(current)+len(ended))
	for _, s := range append(current, ended...) {
		if _, dup := seen[s.ID()]; dup {
			continue
		}
		seen[s.ID()] = struct{}{}
		subs = append(subs, s)
	}
	return analytics.ComputeRetention(total, subs, w.from, w.to, today), nil
}
