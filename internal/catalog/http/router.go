package http

import "github.com/gin-gonic/gin"

// RegisterPublic attaches the unauthenticated catalog routes.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("", h.list)
}

// RegisterAdmin attaches the authenticated management routes.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.POST("/import", h.importBatch)
}
