package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crimson-site/crimson-backend/internal/auth"
	"github.com/crimson-site/crimson-backend/internal/projects/domain"
)

func (h *Handler) chat(c *gin.Context) {
	publicID := strings.TrimSpace(c.Param("public_id"))
	ownerID := auth.UserID(c)

	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.chatService.Edit(c.Request.Context(), ownerID, publicID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, domain.ErrVersionConflict):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "concurrent edit, retry"})
		case errors.Is(err, domain.ErrPrecondition):
			// Broken history is a storage bug, not a user error.
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "corrupt project history"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "note": out.Note, "html": out.HTML})
}
