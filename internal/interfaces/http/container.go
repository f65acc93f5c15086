package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notificationUsecases "f3manager/internal/application/notification/usecases"
	staffUsecases "f3manager/internal/application/staff/usecases"
	subscriptionUsecases "f3manager/internal/application/subscription/usecases"
	"f3manager/internal/infrastructure/config"
	"f3manager/internal/interfaces/http/middleware"
	"f3manager/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It is responsible for wiring everything together and providing a
// Shutdown() method for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Infrastructure services
	svcs *services

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	apiRateLimiter       *middleware.RateLimiter
	loginRateLimiter     *middleware.RateLimiter
}

// NewContainer wires the whole application over an open database.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		db:  db,
		cfg: cfg,
		log: log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	if err := c.initUseCases(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initHandlers()
	c.initMiddlewares()

	return c, nil
}

// ReminderUseCase exposes the expiry reminder job to the CLI.
func (c *Container) ReminderUseCase() *notificationUsecases.SendExpiryRemindersUseCase {
	return c.ucs.sendReminders
}

// RegisterStaffUseCase exposes staff registration to the CLI bootstrap.
func (c *Container) RegisterStaffUseCase() *staffUsecases.RegisterStaffUseCase {
	return c.ucs.registerStaff
}

// CreatePlanUseCase exposes plan creation to the seed command.
func (c *Container) CreatePlanUseCase() *subscriptionUsecases.CreatePlanUseCase {
	return c.ucs.createPlan
}

// ListPlansUseCase lets the seed command skip plans that already exist.
func (c *Container) ListPlansUseCase() *subscriptionUsecases.ListPlansUseCase {
	return c.ucs.listPlans
}

// Shutdown releases connections owned by the container. The database is
// owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
		c.redis = nil
	}
}
