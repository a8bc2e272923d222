package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reservations")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.POST("/:id/cancel", h.Cancel)
	}
}
