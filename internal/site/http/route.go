package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/sites")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)

		// Site configuration is admin only.
		group.POST("", adminMiddleware, h.Create)
		group.PATCH("/:id", adminMiddleware, h.Update)
		group.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
