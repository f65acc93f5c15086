package http

import (
	"gorm.io/gorm"

	"f3manager/internal/domain/attendance"
	"f3manager/internal/domain/member"
	"f3manager/internal/domain/payment"
	"f3manager/internal/domain/staff"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/infrastructure/repository"
	"f3manager/internal/shared/logger"
)

// repositories holds every repository instance.
type repositories struct {
	memberRepo       member.Repository
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.Repository
	paymentRepo      payment.Repository
	attendanceRepo   attendance.Repository
	staffRepo        staff.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		memberRepo:       repository.NewMemberRepository(db, log),
		planRepo:         repository.NewPlanRepository(db, log),
		subscriptionRepo: repository.NewSubscriptionRepository(db, log),
		paymentRepo:      repository.NewPaymentRepository(db, log),
		attendanceRepo:   repository.NewAttendanceRepository(db, log),
		staffRepo:        repository.NewStaffRepository(db, log),
	}
}
