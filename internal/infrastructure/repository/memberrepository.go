package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"f3manager/internal/domain/member"
	"f3manager/internal/infrastructure/persistence/mappers"
	"f3manager/internal/infrastructure/persistence/models"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type MemberRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MemberMapper
	logger logger.Interface
}

func NewMemberRepository(db *gorm.DB, logger logger.Interface) member.Repository {
	return &MemberRepositoryImpl{
		db:     db,
		mapper: mappers.NewMemberMapper(),
		logger: logger,
	}
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, m *member.Member) error {
	model := r.mapper.ToModel(m)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("a member with this email already exists", m.Email())
		}
		r.logger.Errorw("failed to create member", "error", err)
		return fmt.Errorf("failed to create member: %w", err)
	}

	return m.SetID(model.ID)
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, m *member.Member) error {
	model := r.mapper.ToModel(m)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.MemberModel{}).
		Where("id = ?", m.ID()).
		Updates(map[string]interface{}{
			"first_name":         model.FirstName,
			"last_name_paternal": model.LastNamePaternal,
			"last_name_maternal": model.LastNameMaternal,
			"phone":              model.Phone,
			"email":              model.Email,
			"birth_date":         model.BirthDate,
			"emergency_contact":  model.EmergencyContact,
			"emergency_phone":    model.EmergencyPhone,
			"photo_url":          model.PhotoURL,
			"is_active":          model.IsActive,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("a member with this email already exists", m.Email())
		}
		r.logger.Errorw("failed to update member", "error", result.Error, "member_id", m.ID())
		return fmt.Errorf("failed to update member: %w", result.Error)
	}
	return nil
}

func (r *MemberRepositoryImpl) GetByID(ctx context.Context, id uint) (*member.Member, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("id = ?", id), "id", id)
}

func (r *MemberRepositoryImpl) LockByID(ctx context.Context, id uint) (*member.Member, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id)
	return r.first(query, "id", id)
}

func (r *MemberRepositoryImpl) GetByEmail(ctx context.Context, email string) (*member.Member, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("email = ?", email), "email", email)
}

func (r *MemberRepositoryImpl) first(query *gorm.DB, key string, value interface{}) (*member.Member, error) {
	var model models.MemberModel
	if err := query.First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get member", "error", err, key, value)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *MemberRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) (map[uint]*member.Member, error) {
	result := make(map[uint]*member.Member, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []*models.MemberModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get members by IDs", "error", err, "count", len(ids))
		return nil, fmt.Errorf("failed to get members by IDs: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		result[e.ID()] = e
	}
	return result, nil
}

func (r *MemberRepositoryImpl) List(ctx context.Context, filter member.ListFilter) ([]*member.Member, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.MemberModel{})

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name_paternal) LIKE ? OR LOWER(last_name_maternal) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count members", "error", err)
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	var rows []*models.MemberModel
	if err := query.Scopes(db.Paginate(filter.Skip, filter.Limit)).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list members", "error", err)
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// Purge removes the member and every row that references it.
func (r *MemberRepositoryImpl) Purge(ctx context.Context, id uint) error {
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&models.AttendanceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.SubscriptionModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.MemberModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("member not found")
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		r.logger.Errorw("failed to purge member", "error", err, "member_id", id)
		return fmt.Errorf("failed to purge member: %w", err)
	}

	r.logger.Infow("member purged", "member_id", id)
	return nil
}

func (r *MemberRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	return r.count(db.GetTxFromContext(ctx, r.db).Model(&models.MemberModel{}))
}

func (r *MemberRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	return r.count(db.GetTxFromContext(ctx, r.db).Model(&models.MemberModel{}).Where("is_active = ?", true))
}

func (r *MemberRepositoryImpl) CountRegisteredBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.MemberModel{}).
		Scopes(db.DateBetween("registered_on", &from, &to))
	return r.count(query)
}

func (r *MemberRepositoryImpl) count(query *gorm.DB) (int64, error) {
	var n int64
	if err := query.Count(&n).Error; err != nil {
		r.logger.Errorw("failed to count members", "error", err)
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return n, nil
}
