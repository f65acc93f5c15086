package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f3manager/internal/infrastructure/auth"
	"f3manager/internal/infrastructure/ratelimit"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/constants"
	"f3manager/internal/shared/logger"
	"f3manager/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		actor, _ := utils.GetActor(c)
		c.JSON(http.StatusOK, gin.H{"staff_id": actor.StaffID, "role": actor.Role})
	})
	engine.GET("/ping", chain...)
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	clock := biztime.NewFixedClock(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC))
	jwtSvc := auth.NewJWTService("test-secret", 60, clock)
	token, err := jwtSvc.Generate(authorization.Actor{StaffID: 7, Username: "ana", Role: authorization.RoleOperator})
	require.NoError(t, err)

	engine := newEngine(NewAuthMiddleware(jwtSvc, logger.NewNopLogger()).RequireAuth())

	t.Run("missing header", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Basic "+token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, serve(engine, req).Code)
	})

	t.Run("tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token.AccessToken+"x")
		assert.Equal(t, http.StatusUnauthorized, serve(engine, req).Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		w := serve(engine, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"staff_id":7,"role":"operator"}`, w.Body.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.AddCookie(&http.Cookie{Name: utils.AccessTokenCookie, Value: token.AccessToken})
		assert.Equal(t, http.StatusOK, serve(engine, req).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		clock.Advance(2 * time.Hour)
		defer clock.Advance(-2 * time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		w := serve(engine, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"token_expired"`)
	})
}

func withActor(role authorization.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.SetActor(c, authorization.Actor{StaffID: 1, Username: "staff", Role: role})
		c.Next()
	}
}

func TestRequireAdmin(t *testing.T) {
	perm := NewPermissionMiddleware(authorization.RoleGate{}, logger.NewNopLogger())

	w := serve(newEngine(withActor(authorization.RoleOperator), perm.RequireAdmin()), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(newEngine(withActor(authorization.RoleAdmin), perm.RequireAdmin()), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(newEngine(perm.RequireOperator()), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ ratelimit.Rule) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func (s *stubLimiter) Remaining(context.Context, string, ratelimit.Rule) (int64, error) {
	return 0, nil
}

func (s *stubLimiter) Reset(context.Context, string) error {
	return nil
}

func TestRateLimiter(t *testing.T) {
	rule := ratelimit.Rule{Requests: 5, Window: time.Minute}

	denied := &stubLimiter{allowed: false}
	w := serve(newEngine(NewRateLimiter(denied, "login", rule, logger.NewNopLogger()).Limit()), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	require.Len(t, denied.keys, 1)
	assert.Contains(t, denied.keys[0], "login:")

	broken := &stubLimiter{err: errors.New("redis down")}
	w = serve(newEngine(NewRateLimiter(broken, "api", rule, logger.NewNopLogger()).Limit()), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(newEngine(NewRateLimiter(nil, "api", rule, logger.NewNopLogger()).Limit()), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get(constants.HeaderXRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderXRequestID, "desk-42")
	w = serve(engine, req)
	assert.Equal(t, "desk-42", w.Header().Get(constants.HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNopLogger()))
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"http://desk.local"}))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://desk.local")
	w := serve(engine, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://desk.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = serve(engine, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
