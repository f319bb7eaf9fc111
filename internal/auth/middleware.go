package auth

import (
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/crimson-site/crimson-backend/internal/users"
)

// WithUser resolves the caller's identity and stores it in the context.
// Two modes, matching deployment reality:
//   - A Bearer token is verified against Firebase when an auth client
//     is configured; the Firebase UID becomes the user id.
//   - Otherwise the X-User-Id header is trusted as a guest identity,
//     defaulting to "guest" when absent.
//
// Either way the user row is upserted so ownership queries always have
// a subject to filter on.
func WithUser(authClient *fbauth.Client, userRepo *users.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uid, email, name string

		if token := extractToken(c); token != "" && authClient != nil {
			decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
				c.Abort()
				return
			}
			uid = decoded.UID
			if e, ok := decoded.Claims["email"].(string); ok {
				email = e
			}
			if n, ok := decoded.Claims["name"].(string); ok {
				name = n
			}
		} else {
			uid = strings.TrimSpace(c.GetHeader("X-User-Id"))
			if uid == "" {
				uid = "guest"
			}
		}

		if _, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			ExternalUID: uid,
			Email:       email,
			DisplayName: name,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUserID, uid)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
