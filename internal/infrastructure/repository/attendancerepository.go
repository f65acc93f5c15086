package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/infrastructure/persistence/mappers"
	"f3manager/internal/infrastructure/persistence/models"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/db"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
)

const attendanceOrder = "check_in_time DESC, id DESC"

type AttendanceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mappers.AttendanceMapper
	logger logger.Interface
}

func NewAttendanceRepository(db *gorm.DB, logger logger.Interface) attendance.Repository {
	return &AttendanceRepositoryImpl{
		db:     db,
		mapper: mappers.NewAttendanceMapper(),
		logger: logger,
	}
}

func (r *AttendanceRepositoryImpl) Create(ctx context.Context, a *attendance.Attendance) error {
	model := r.mapper.ToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create attendance record", "error", err, "member_id", a.MemberID())
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *AttendanceRepositoryImpl) CheckOut(ctx context.Context, a *attendance.Attendance) (bool, error) {
	model := r.mapper.ToModel(a)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.AttendanceModel{}).
		Where("id = ? AND check_out_time IS NULL", a.ID()).
		Updates(map[string]interface{}{
			"check_out_time":   model.CheckOutTime,
			"duration_minutes": model.DurationMinutes,
			"notes":            model.Notes,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to check out attendance record", "error", result.Error, "attendance_id", a.ID())
		return false, fmt.Errorf("failed to check out attendance record: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *AttendanceRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.AttendanceModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete attendance record", "error", result.Error, "attendance_id", id)
		return fmt.Errorf("failed to delete attendance record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("attendance record not found")
	}
	return nil
}

func (r *AttendanceRepositoryImpl) GetByID(ctx context.Context, id uint) (*attendance.Attendance, error) {
	var model models.AttendanceModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get attendance record", "error", err, "attendance_id", id)
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *AttendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]*attendance.Attendance, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.AttendanceModel{}).
		Scopes(db.DateBetween("date", filter.From, filter.To))

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.OpenOnly {
		query = query.Where("check_out_time IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count attendance records", "error", err)
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	records, err := r.find(query.Scopes(db.Paginate(filter.Skip, filter.Limit)).Order(attendanceOrder))
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *AttendanceRepositoryImpl) FindOpenForMember(ctx context.Context, memberID uint) (*attendance.Attendance, error) {
	var model models.AttendanceModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("member_id = ? AND check_out_time IS NULL", memberID).
		Order(attendanceOrder).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find open attendance", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("failed to find open attendance: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *AttendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]*attendance.Attendance, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).
		Where("date = ?", biztime.Normalize(date)).
		Order(attendanceOrder))
}

func (r *AttendanceRepositoryImpl) ListOpenOnDate(ctx context.Context, date time.Time) ([]*attendance.Attendance, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).
		Where("date = ? AND check_out_time IS NULL", biztime.Normalize(date)).
		Order(attendanceOrder))
}

func (r *AttendanceRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]*attendance.Attendance, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).
		Scopes(db.DateBetween("date", &from, &to)).
		Order(attendanceOrder))
}

func (r *AttendanceRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*attendance.Attendance, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).Order(attendanceOrder).Limit(limit))
}

func (r *AttendanceRepositoryImpl) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.AttendanceModel{}).
		Where("date = ?", biztime.Normalize(date)).
		Count(&n).Error; err != nil {
		r.logger.Errorw("failed to count attendance", "error", err)
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return n, nil
}

// ClearSubscription detaches visits from a subscription that is being removed.
func (r *AttendanceRepositoryImpl) ClearSubscription(ctx context.Context, subscriptionID uint) error {
	err := db.GetTxFromContext(ctx, r.db).Model(&models.AttendanceModel{}).
		Where("subscription_id = ?", subscriptionID).
		Update("subscription_id", nil).Error
	if err != nil {
		r.logger.Errorw("failed to detach attendance from subscription", "error", err, "subscription_id", subscriptionID)
		return fmt.Errorf("failed to detach attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepositoryImpl) find(query *gorm.DB) ([]*attendance.Attendance, error) {
	var rows []*models.AttendanceModel
	if err := query.Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list attendance records", "error", err)
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return r.mapper.ToEntities(rows)
}
