package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tm := NewTokenManager("test-secret", time.Minute)

	r := gin.New()
	r.Use(Required(tm))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})

	do := func(authorization string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("valid token", func(t *testing.T) {
		token, err := tm.Issue("user-1", "alice@example.com")
		require.NoError(t, err)

		w := do("Bearer " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("").Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Token abc").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Bearer garbage").Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Minute)
		token, err := other.Issue("user-1", "alice@example.com")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, do("Bearer "+token).Code)
	})
}
