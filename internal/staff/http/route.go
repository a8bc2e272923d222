package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMiddleware, h.Me)
	}

	staffGroup := g.Group("/staff")
	staffGroup.Use(authMiddleware, adminMiddleware)
	{
		staffGroup.POST("", h.Create)
	}
}
