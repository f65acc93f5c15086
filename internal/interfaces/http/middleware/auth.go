package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"f3manager/internal/infrastructure/auth"
	"f3manager/internal/shared/constants"
	"f3manager/internal/shared/errors"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth accepts the access token cookie or an Authorization bearer
// header and stores the staff identity on the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie)

		if token == "" {
			authHeader := c.GetHeader(constants.HeaderAuthorization)
			if authHeader == "" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
				c.Abort()
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
				c.Abort()
				return
			}

			token = parts[1]
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			authErr := errors.NewTokenInvalidError("access token")
			if auth.IsTokenExpired(err) {
				authErr = errors.NewTokenExpiredError("access token")
			}
			if errors.ShouldLogAuthError(authErr) {
				m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			}
			utils.ErrorResponseWithError(c, authErr)
			c.Abort()
			return
		}

		utils.SetActor(c, claims.Actor())
		c.Next()
	}
}
