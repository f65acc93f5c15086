package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"f3manager/internal/domain/staff"
	"f3manager/internal/infrastructure/persistence/mappers"
	"f3manager/internal/infrastructure/persistence/models"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

type StaffRepositoryImpl struct {
	db     *gorm.DB
	mapper *mappers.StaffMapper
	logger logger.Interface
}

func NewStaffRepository(db *gorm.DB, logger logger.Interface) staff.Repository {
	return &StaffRepositoryImpl{
		db:     db,
		mapper: mappers.NewStaffMapper(),
		logger: logger,
	}
}

func (r *StaffRepositoryImpl) Create(ctx context.Context, u *staff.User) error {
	model := r.mapper.ToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("username or email already registered", u.Username())
		}
		r.logger.Errorw("failed to create staff user", "error", err, "username", u.Username())
		return fmt.Errorf("failed to create staff user: %w", err)
	}
	return u.SetID(model.ID)
}

func (r *StaffRepositoryImpl) Update(ctx context.Context, u *staff.User) error {
	model := r.mapper.ToModel(u)
	err := db.GetTxFromContext(ctx, r.db).Model(&models.StaffUserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"full_name":     model.FullName,
			"role":          model.Role,
			"password_hash": model.PasswordHash,
			"is_active":     model.IsActive,
			"last_login_at": model.LastLoginAt,
			"updated_at":    model.UpdatedAt,
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update staff user", "error", err, "staff_id", u.ID())
		return fmt.Errorf("failed to update staff user: %w", err)
	}
	return nil
}

func (r *StaffRepositoryImpl) GetByID(ctx context.Context, id uint) (*staff.User, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

func (r *StaffRepositoryImpl) GetByUsername(ctx context.Context, username string) (*staff.User, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("username = ?", username))
}

func (r *StaffRepositoryImpl) first(query *gorm.DB) (*staff.User, error) {
	var model models.StaffUserModel
	if err := query.First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get staff user", "error", err)
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *StaffRepositoryImpl) List(ctx context.Context) ([]*staff.User, error) {
	var rows []*models.StaffUserModel
	if err := db.GetTxFromContext(ctx, r.db).Order("username ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list staff users", "error", err)
		return nil, fmt.Errorf("failed to list staff users: %w", err)
	}
	users := make([]*staff.User, 0, len(rows))
	for _, row := range rows {
		u, err := r.mapper.ToEntity(row)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *StaffRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.StaffUserModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count staff users: %w", err)
	}
	return n, nil
}
