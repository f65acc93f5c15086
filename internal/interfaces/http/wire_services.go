package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"f3manager/internal/infrastructure/auth"
	"f3manager/internal/infrastructure/config"
	"f3manager/internal/infrastructure/email"
	"f3manager/internal/infrastructure/permission"
	"f3manager/internal/infrastructure/ratelimit"
	"f3manager/internal/interfaces/http/middleware"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	shareddb "f3manager/internal/shared/db"
	"f3manager/internal/shared/logger"
)

// services holds the infrastructure services shared by use cases and
// middlewares.
type services struct {
	clock     biztime.Clock
	txManager *shareddb.TransactionManager
	gate      authorization.Gate
	jwtSvc    *auth.JWTService
	hasher    *auth.BcryptPasswordHasher
	mailer    *email.SMTPEmailService
	limiter   ratelimit.RateLimiter
}

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Basic Services
// ============================================================

// initInfrastructure initializes Redis, all repositories and the services the
// use cases depend on.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db, log)

	gate, err := permission.NewEnforcer(log)
	if err != nil {
		c.Shutdown()
		return fmt.Errorf("failed to build permission enforcer: %w", err)
	}

	clock := biztime.NewSystemClock()
	c.svcs = &services{
		clock:     clock,
		txManager: shareddb.NewTransactionManager(c.db),
		gate:      gate,
		jwtSvc:    auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, clock),
		hasher:    auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		mailer: email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
		}),
	}

	// Without Redis the rate limiters pass every request through.
	if c.redis != nil {
		c.svcs.limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 4: Middlewares
// ============================================================

func (c *Container) initMiddlewares() {
	cfg := c.cfg
	log := c.log
	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	c.authMiddleware = middleware.NewAuthMiddleware(c.svcs.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.svcs.gate, log)
	c.apiRateLimiter = middleware.NewRateLimiter(c.svcs.limiter, "api", ratelimit.Rule{
		Requests: cfg.RateLimit.Requests,
		Window:   window,
	}, log)
	c.loginRateLimiter = middleware.NewRateLimiter(c.svcs.limiter, "login", ratelimit.Rule{
		Requests: cfg.RateLimit.LoginRequests,
		Window:   window,
	}, log)
}
