package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"yatube-backend/config"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker map[string]bool

func (s stubChecker) IsTokenBlacklisted(token string) bool {
	return s[token]
}

type stubUsers map[int]*model.User

func (s stubUsers) GetUserByID(_ context.Context, id int) (*model.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
}

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "middleware-test-secret"
}

func newToken(t *testing.T, userID int) string {
	token, err := util.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func whoami(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
}

func TestAuthMiddlewareRedirectsAnonymous(t *testing.T) {
	router := gin.New()
	router.GET("/api/follow", AuthMiddleware(stubChecker{}, "/api/auth/login"), whoami)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/follow?page=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/auth/login?next=%2Fapi%2Ffollow%3Fpage%3D2", w.Header().Get("Location"))
}

func TestAuthMiddleware(t *testing.T) {
	valid := newToken(t, 5)
	revoked := newToken(t, 6)
	checker := stubChecker{revoked: true}

	router := gin.New()
	router.GET("/me", AuthMiddleware(checker, "/login"), whoami)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"有效令牌", "Bearer " + valid, http.StatusOK},
		{"已注销令牌", "Bearer " + revoked, http.StatusUnauthorized},
		{"格式错误", "Token " + valid, http.StatusUnauthorized},
		{"伪造令牌", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", tt.header)
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	router := gin.New()
	router.GET("/me", OptionalAuth(stubChecker{}), whoami)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user_id":0}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+newToken(t, 9))
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user_id":9}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0}`, w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	users := stubUsers{
		1: {ID: 1, Role: model.RoleAdmin},
		2: {ID: 2, Role: model.RoleUser},
	}
	router := gin.New()
	router.GET("/admin", AuthMiddleware(stubChecker{}, "/login"), AdminMiddleware(users), whoami)

	for userID, status := range map[int]int{1: http.StatusOK, 2: http.StatusForbidden, 3: http.StatusForbidden} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+newToken(t, userID))
		router.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, "user %d", userID)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestErrorMonitorCountsErrors(t *testing.T) {
	monitor := NewErrorMonitor(prometheus.NewRegistry())
	router := gin.New()
	router.Use(ErrorMonitorMiddleware(monitor))
	router.GET("/missing", func(c *gin.Context) {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "帖子不存在"))
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/missing", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, 2, monitor.GetErrorCounts()[errors.ErrPostNotFound])
}
