package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crimson-site/crimson-backend/internal/auth"
	"github.com/crimson-site/crimson-backend/internal/projects/domain"
	"github.com/crimson-site/crimson-backend/internal/projects/service"
)

type Handler struct {
	projectService *service.ProjectService
	chatService    *service.ChatService
}

func NewHandler(projectService *service.ProjectService, chatService *service.ChatService) *Handler {
	return &Handler{
		projectService: projectService,
		chatService:    chatService,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	ownerID := auth.UserID(c)
	p, err := h.projectService.Create(c.Request.Context(), ownerID, req.Prompt, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project_id": p.PublicID, "html": p.HTML})
}

func (h *Handler) list(c *gin.Context) {
	ownerID := auth.UserID(c)
	items, err := h.projectService.List(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	publicID := strings.TrimSpace(c.Param("public_id"))
	ownerID := auth.UserID(c)

	p, err := h.projectService.Get(c.Request.Context(), ownerID, publicID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) preview(c *gin.Context) {
	publicID := strings.TrimSpace(c.Param("public_id"))
	ownerID := auth.UserID(c)

	html, err := h.projectService.Preview(c.Request.Context(), ownerID, publicID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) updateCode(c *gin.Context) {
	publicID := strings.TrimSpace(c.Param("public_id"))

	var req codeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.HTML == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	ownerID := auth.UserID(c)
	err := h.projectService.UpdateCode(c.Request.Context(), ownerID, publicID, req.HTML)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, domain.ErrVersionConflict):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "concurrent edit, retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) deploy(c *gin.Context) {
	publicID := strings.TrimSpace(c.Param("public_id"))
	ownerID := auth.UserID(c)

	res, err := h.projectService.Deploy(c.Request.Context(), ownerID, publicID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "url": res.URL, "status": res.Status, "deployment_id": res.DeploymentID})
}

func (h *Handler) delete(c *gin.Context) {
	publicID := strings.TrimSpace(c.Param("public_id"))
	ownerID := auth.UserID(c)

	ok, err := h.projectService.Delete(c.Request.Context(), ownerID, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
