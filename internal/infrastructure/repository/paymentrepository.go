package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"f3manager/internal/domain/payment"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/infrastructure/persistence/mappers"
	"f3manager/internal/infrastructure/persistence/models"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

const paymentOrder = "payment_date DESC, created_at DESC, id DESC"

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mappers.PaymentMapper
	logger logger.Interface
}

func NewPaymentRepository(db *gorm.DB, logger logger.Interface) payment.Repository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mappers.NewPaymentMapper(),
		logger: logger,
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, p *payment.Payment) error {
	model := r.mapper.ToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment record", "error", err, "subscription_id", p.SubscriptionID())
		return fmt.Errorf("failed to create payment record: %w", err)
	}
	return p.SetID(model.ID)
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, p *payment.Payment) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentModel{}).
		Where("id = ?", p.ID()).
		Updates(map[string]interface{}{
			"payment_method": p.Method().String(),
			"reference":      p.Reference(),
			"notes":          p.Notes(),
			"updated_at":     p.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update payment record", "error", result.Error, "payment_id", p.ID())
		return fmt.Errorf("failed to update payment record: %w", result.Error)
	}
	return nil
}

func (r *PaymentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.PaymentModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete payment record", "error", result.Error, "payment_id", id)
		return fmt.Errorf("failed to delete payment record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("payment not found")
	}
	return nil
}

func (r *PaymentRepositoryImpl) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment record", "error", err, "payment_id", id)
		return nil, fmt.Errorf("failed to get payment record: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PaymentRepositoryImpl) List(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentModel{}).
		Scopes(db.DateBetween("payment_date", filter.From, filter.To))

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.SubscriptionID != nil {
		query = query.Where("subscription_id = ?", *filter.SubscriptionID)
	}
	if filter.Method != nil {
		query = query.Where("payment_method = ?", filter.Method.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count payment records", "error", err)
		return nil, 0, fmt.Errorf("failed to count payment records: %w", err)
	}

	payments, err := r.find(query.Scopes(db.Paginate(filter.Skip, filter.Limit)).Order(paymentOrder))
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// SumForSubscription is computed in SQL over integer cents.
func (r *PaymentRepositoryImpl) SumForSubscription(ctx context.Context, subscriptionID uint) (sharedvo.Money, error) {
	var total int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentModel{}).
		Where("subscription_id = ?", subscriptionID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	if err != nil {
		r.logger.Errorw("failed to sum payments", "error", err, "subscription_id", subscriptionID)
		return sharedvo.Zero(), fmt.Errorf("failed to sum payments: %w", err)
	}
	return sharedvo.NewMoney(total), nil
}

func (r *PaymentRepositoryImpl) CountForSubscription(ctx context.Context, subscriptionID uint) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentModel{}).
		Where("subscription_id = ?", subscriptionID).
		Count(&n).Error; err != nil {
		r.logger.Errorw("failed to count payments", "error", err, "subscription_id", subscriptionID)
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return n, nil
}

func (r *PaymentRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]*payment.Payment, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).
		Scopes(db.DateBetween("payment_date", &from, &to)).
		Order(paymentOrder))
}

func (r *PaymentRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*payment.Payment, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).Order(paymentOrder).Limit(limit))
}

func (r *PaymentRepositoryImpl) find(query *gorm.DB) ([]*payment.Payment, error) {
	var rows []*models.PaymentModel
	if err := query.Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list payment records", "error", err)
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}
	return r.mapper.ToEntities(rows)
}
