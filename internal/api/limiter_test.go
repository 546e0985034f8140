package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashov/item-sharing-backend/internal/auth"
)

func TestRateLimiterReusesPerKeyLimiter(t *testing.T) {
	l := newRateLimiter(1, 1)
	assert.Same(t, l.getLimiter("user-1"), l.getLimiter("user-1"))
	assert.NotSame(t, l.getLimiter("user-1"), l.getLimiter("user-2"))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(1, 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	status := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	// Burst of 2 allowed, third request in the same instant is throttled.
	assert.Equal(t, http.StatusOK, status())
	assert.Equal(t, http.StatusOK, status())
	assert.Equal(t, http.StatusTooManyRequests, status())
}

func TestRateLimitKeysOnAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tm := auth.NewTokenManager("test-secret", time.Minute)

	// Same ordering as the router: auth first, then the limiter, so the
	// limiter sees the authenticated user id.
	r := gin.New()
	group := r.Group("/")
	group.Use(auth.Required(tm), RateLimit(1, 1))
	group.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	status := func(token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	aliceToken, err := tm.Issue("alice", "alice@example.com")
	require.NoError(t, err)
	bobToken, err := tm.Issue("bob", "bob@example.com")
	require.NoError(t, err)

	// Each user gets an independent bucket even from the same address.
	assert.Equal(t, http.StatusOK, status(aliceToken))
	assert.Equal(t, http.StatusOK, status(bobToken))
	assert.Equal(t, http.StatusTooManyRequests, status(aliceToken))
	assert.Equal(t, http.StatusTooManyRequests, status(bobToken))
}
