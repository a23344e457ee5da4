package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct {
	userID string
	err    error
}

func (s stubTokens) GenerateAccessToken(context.Context, domain.User) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not implemented")
}

func (s stubTokens) ValidateAccessToken(context.Context, string) (string, error) {
	return s.userID, s.err
}

type stubSessions struct {
	session *domain.Session
}

func (s stubSessions) CurrentSession(context.Context) (*domain.Session, bool) {
	return s.session, s.session != nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(tokens stubTokens, sessions stubSessions) *gin.Engine {
	r := gin.New()
	r.GET("/private", AuthMiddleware(tokens, sessions), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		ctxUserID, _ := GetUserIDFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": userID, "ctxUser": ctxUserID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	live := stubSessions{session: &domain.Session{User: domain.User{ID: "u1"}}}

	tests := []struct {
		name       string
		header     string
		tokens     stubTokens
		sessions   stubSessions
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", stubTokens{userID: "u1"}, live, http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", stubTokens{userID: "u1"}, live, http.StatusUnauthorized, "Bearer {token}"},
		{"invalid token", "Bearer abc", stubTokens{err: jwt.ErrTokenSignatureInvalid}, live, http.StatusUnauthorized, "Invalid token"},
		{"expired token", "Bearer abc", stubTokens{err: jwt.ErrTokenExpired}, live, http.StatusUnauthorized, "Token has expired"},
		{"no session", "Bearer abc", stubTokens{userID: "u1"}, stubSessions{}, http.StatusUnauthorized, "Session has ended"},
		{"other user's session", "Bearer abc", stubTokens{userID: "u2"}, live, http.StatusUnauthorized, "Session has ended"},
		{"valid", "bearer abc", stubTokens{userID: "u1"}, live, http.StatusOK, `"ctxUser":"u1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(tt.tokens, tt.sessions).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRateLimit(t *testing.T) {
	lim, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(RateLimit(lim))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware_StoresRequestLogger(t *testing.T) {
	base := slog.New(slog.DiscardHandler)

	var got *slog.Logger
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		got = GetLoggerFromCtx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.NotSame(t, slog.Default(), got)
}

func TestGetLoggerFromCtx_DefaultsWhenMissing(t *testing.T) {
	assert.Same(t, slog.Default(), GetLoggerFromCtx(context.Background()))

	_, ok := GetUserIDFromCtx(context.Background())
	assert.False(t, ok)
}
