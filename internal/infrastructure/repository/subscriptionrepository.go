package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/infrastructure/persistence/mappers"
	"f3manager/internal/infrastructure/persistence/models"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := r.mapper.ToModel(sub)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "error", err, "member_id", sub.MemberID())
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return sub.SetID(model.ID)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model := r.mapper.ToModel(sub)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ?", sub.ID()).
		Updates(map[string]interface{}{
			"status":            model.Status,
			"payment_status":    model.PaymentStatus,
			"amount_paid_cents": model.AmountPaidCents,
			"notes":             model.Notes,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "error", result.Error, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.SubscriptionModel{}, id)
	if result.Error != nil {
		if errors.IsForeignKeyError(result.Error) {
			return errors.NewConflictError("subscription has payments")
		}
		r.logger.Errorw("failed to delete subscription", "error", result.Error, "subscription_id", id)
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("subscription not found")
	}

	r.logger.Infow("subscription deleted", "subscription_id", id)
	return nil
}

// MarkExpired flips an active, lapsed row to expired. The conditional WHERE
// makes repeated or concurrent calls no-ops once the row is expired.
func (r *SubscriptionRepositoryImpl) MarkExpired(ctx context.Context, id uint, today, now time.Time) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ? AND status = ? AND end_date < ?", id, vo.StatusActive.String(), biztime.Normalize(today)).
		Updates(map[string]interface{}{
			"status":     vo.StatusExpired.String(),
			"updated_at": now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark subscription expired", "error", result.Error, "subscription_id", id)
		return false, fmt.Errorf("failed to mark subscription expired: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
