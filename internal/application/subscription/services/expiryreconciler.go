package services

import (
	"context"
	"fmt"

	"f3manager/internal/domain/subscription"
	"f3manager/internal/infrastructure/metrics"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/logger"
)

// ExpiryReconciler applies the lazy active to expired transition on every
// subscription a read path is about to return. The write is a conditional
// update, so concurrent readers observing the same lapse persist it once.
type ExpiryReconciler struct {
	subscriptionRepo subscription.Repository
	clock            biztime.Clock
	logger           logger.Interface
}

func NewExpiryReconciler(
	subscriptionRepo subscription.Repository,
	clock biztime.Clock,
	logger logger.Interface,
) *ExpiryReconciler {
	return &ExpiryReconciler{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

// Observe normalizes subs in place. A nil entry is skipped.
func (r *ExpiryReconciler) Observe(ctx context.Context, subs ...*subscription.Subscription) error {
	today := r.clock.Today()
	now := r.clock.Now()

	for _, sub := range subs {
		if sub == nil || !sub.ObserveExpiry(today, now) {
			continue
		}

		changed, err := r.subscriptionRepo.MarkExpired(ctx, sub.ID(), today, now)
		if err != nil {
			r.logger.Errorw("failed to persist subscription expiry", "error", err, "subscription_id", sub.ID())
			return fmt.Errorf("failed to persist subscription expiry: %w", err)
		}
		if changed {
			metrics.RecordExpiry()
			r.logger.Infow("subscription expired",
				"subscription_id", sub.ID(),
				"member_id", sub.MemberID(),
				"end_date", biztime.FormatDate(sub.EndDate()),
			)
		}
	}
	return nil
}
