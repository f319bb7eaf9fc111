package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. The chat
// route takes extra middleware (rate limiting) supplied by the caller.
func (h *Handler) Register(rg *gin.RouterGroup, chatMiddleware ...gin.HandlerFunc) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:public_id", h.get)
	rg.GET("/:public_id/preview", h.preview)
	rg.PUT("/:public_id/code", h.updateCode)
	rg.POST("/:public_id/deploy", h.deploy)
	rg.DELETE("/:public_id", h.delete)

	chat := append([]gin.HandlerFunc{}, chatMiddleware...)
	chat = append(chat, h.chat)
	rg.POST("/:public_id/chat", chat...)
}
