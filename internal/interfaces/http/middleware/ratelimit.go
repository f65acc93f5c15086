package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"f3manager/internal/infrastructure/ratelimit"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

// RateLimiter enforces a sliding-window rule per client IP. A nil limiter or
// a disabled rule lets every request through. Limiter errors fail open.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	rule    ratelimit.Rule
	scope   string
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, scope string, rule ratelimit.Rule, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		rule:    rule,
		scope:   scope,
		logger:  logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.limiter == nil || !rl.rule.Enabled() {
			c.Next()
			return
		}

		key := rl.scope + ":" + c.ClientIP()
		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.rule)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "error", err, "scope", rl.scope)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.rule.Window.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
