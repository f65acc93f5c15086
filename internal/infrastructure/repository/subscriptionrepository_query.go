package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
	"f3manager/internal/infrastructure/persistence/models"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
)

// currentScope keeps active subscriptions that still cover today.
func currentScope(today time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ? AND end_date >= ?", vo.StatusActive.String(), biztime.Normalize(today))
	}
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "error", err, "subscription_id", id)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) (map[uint]*subscription.Subscription, error) {
	result := make(map[uint]*subscription.Subscription, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	subs, err := r.find(db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids), "by IDs")
	if err != nil {
		return nil, err
	}
	for _, s := range subs {
		result[s.ID()] = s
	}
	return result, nil
}

// List filters on the status a reader would see today: lapsed rows still
// stored as active are matched by the expired filter, not the active one.
func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter subscription.ListFilter) ([]*subscription.Subscription, int64, error) {
	today := biztime.Normalize(filter.Today)
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{})

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.PlanID != nil {
		query = query.Where("plan_id = ?", *filter.PlanID)
	}
	if filter.CurrentOnly {
		query = query.Scopes(currentScope(today))
	}
	if filter.Status != nil {
		switch *filter.Status {
		case vo.StatusActive:
			query = query.Scopes(currentScope(today))
		case vo.StatusExpired:
			query = query.Where("(status = ? OR (status = ? AND end_date < ?))", vo.StatusExpired.String(), vo.StatusActive.String(), today)
		default:
			query = query.Where("status = ?", filter.Status.String())
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	subs, err := r.find(query.Scopes(db.Paginate(filter.Skip, filter.Limit)).Order("created_at DESC, id DESC"), "list")
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *SubscriptionRepositoryImpl) FindCurrentForMember(ctx context.Context, memberID uint, today time.Time, excludeID uint) (*subscription.Subscription, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Scopes(currentScope(today)).
		Where("member_id = ?", memberID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var model models.SubscriptionModel
	if err := query.Order("end_date DESC, id DESC").First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find current subscription", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("failed to find current subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) ListCurrentForMembers(ctx context.Context, memberIDs []uint, today time.Time) (map[uint]*subscription.Subscription, error) {
	result := make(map[uint]*subscription.Subscription, len(memberIDs))
	if len(memberIDs) == 0 {
		return result, nil
	}

	subs, err := r.find(db.GetTxFromContext(ctx, r.db).
		Scopes(currentScope(today)).
		Where("member_id IN ?", memberIDs).
		Order("end_date ASC, id ASC"), "current for members")
	if err != nil {
		return nil, err
	}
	// Ascending order leaves the latest end date in the map.
	for _, s := range subs {
		result[s.MemberID()] = s
	}
	return result, nil
}

func (r *SubscriptionRepositoryImpl) CountByPlan(ctx context.Context, planID uint) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("plan_id = ?", planID).
		Count(&n).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions by plan", "error", err, "plan_id", planID)
		return 0, fmt.Errorf("failed to count subscriptions by plan: %w", err)
	}
	return n, nil
}

func (r *SubscriptionRepositoryImpl) ListCurrent(ctx context.Context, today time.Time) ([]*subscription.Subscription, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).
		Scopes(currentScope(today)).
		Order("end_date ASC, id ASC"), "current")
}

func (r *SubscriptionRepositoryImpl) ListEndingBetween(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).
		Scopes(db.DateBetween("end_date", &from, &to)).
		Order("end_date ASC, id ASC"), "ending between")
}

func (r *SubscriptionRepositoryImpl) ListStartedBetween(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).
		Scopes(db.DateBetween("start_date", &from, &to)).
		Order("start_date ASC, id ASC"), "started between")
}

func (r *SubscriptionRepositoryImpl) find(query *gorm.DB, what string) ([]*subscription.Subscription, error) {
	var rows []*models.SubscriptionModel
	if err := query.Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err, "query", what)
		return nil, fmt.Errorf("failed to list subscriptions %s: %w", what, err)
	}
	return r.mapper.ToEntities(rows)
}
