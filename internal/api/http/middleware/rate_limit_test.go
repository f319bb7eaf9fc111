package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/crimson-site/crimson-backend/internal/auth"
)

func rateLimitedRouter(rps rate.Limit, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chat",
		func(c *gin.Context) {
			c.Set(auth.CtxUserID, c.GetHeader("X-User-Id"))
			c.Next()
		},
		PerUserRateLimit(rps, burst),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r
}

func post(r *gin.Engine, uid string) int {
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.Header.Set("X-User-Id", uid)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestPerUserRateLimit_Throttles(t *testing.T) {
	r := rateLimitedRouter(rate.Every(time.Minute), 2)

	assert.Equal(t, http.StatusOK, post(r, "user-a"))
	assert.Equal(t, http.StatusOK, post(r, "user-a"))
	assert.Equal(t, http.StatusTooManyRequests, post(r, "user-a"))
}

func TestPerUserRateLimit_IsolatesUsers(t *testing.T) {
	r := rateLimitedRouter(rate.Every(time.Minute), 1)

	assert.Equal(t, http.StatusOK, post(r, "user-a"))
	assert.Equal(t, http.StatusTooManyRequests, post(r, "user-a"))
	assert.Equal(t, http.StatusOK, post(r, "user-b"))
}
