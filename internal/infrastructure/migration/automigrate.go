package migration

import (
	"f3manager/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the models created by the GORM strategy, parents first.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.MemberModel{},
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.PaymentModel{},
		&models.AttendanceModel{},
		&models.StaffUserModel{},
	}
}
