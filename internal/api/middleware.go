package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mossyoak/campsite-availability-backend/internal/auth"
	"github.com/mossyoak/campsite-availability-backend/internal/staff"
)

// RequireAdmin ensures the authenticated staff member is an admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(staffService staff.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := auth.GetStaffID(c)
		if staffID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// Check permissions
		m, err := staffService.GetByID(c.Request.Context(), staffID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "staff member not found"})
			return
		}

		if !m.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
