package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxUserID = "user_id"

// UserID extracts the resolved user id from the Gin context. Set by
// WithUser; the value is opaque to everything downstream — projects are
// scoped by it in storage queries and it is never interpreted.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}
