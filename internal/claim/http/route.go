package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/claims")
	group.Use(authMiddleware)
	{
		group.GET("/:id", h.Get)

		// Blackouts and closures are configuration-level blocks; admin only.
		group.POST("", adminMiddleware, h.Create)
		group.POST("/:id/release", adminMiddleware, h.Release)
	}

	// Claim history hangs off the site it belongs to.
	g.GET("/sites/:id/claims", authMiddleware, h.ListBySite)
}
