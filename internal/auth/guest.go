package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterGuestRoutes exposes the mock guest sign-in. A real frontend
// would go through Google/Apple and send a Firebase token instead; the
// guest id here is a plain opaque identifier.
func RegisterGuestRoutes(rg *gin.RouterGroup) {
	rg.POST("/guest", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": "guest_" + uuid.New().String(),
			"name":    "Guest",
		})
	})
}
