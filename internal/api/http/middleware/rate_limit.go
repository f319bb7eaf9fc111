package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/crimson-site/crimson-backend/internal/auth"
)

// PerUserRateLimit throttles a route per resolved user id. Limiters are
// kept in-process; this guards a single instance against chat-edit
// hammering, not a fleet.
func PerUserRateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(uid string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[uid]
		if !ok {
			l = rate.NewLimiter(rps, burst)
			limiters[uid] = l
		}
		return l
	}

	return func(c *gin.Context) {
		uid := auth.UserID(c)
		if uid == "" {
			uid = c.ClientIP()
		}

		if !limiterFor(uid).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
