package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mossyoak/campsite-availability-backend/internal/auth"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/response"
	"github.com/mossyoak/campsite-availability-backend/internal/staff"
)

type Handler struct {
	service    staff.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service staff.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

//
// POST /v1/auth/login
//

func (h *Handler) Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m, err := h.service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(m.ID, m.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		Member:      NewMemberResponse(m),
	})
}

//
// GET /v1/auth/me
//

func (h *Handler) Me(c *gin.Context) {
	staffID := auth.GetStaffID(c)
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), staffID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff member not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{Member: NewMemberResponse(m)})
}

//
// POST /v1/staff (admin)
//

func (h *Handler) Create(c *gin.Context) {
	var body CreateStaffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.service.Register(c.Request.Context(), body.Email, body.Password, body.DisplayName, body.IsAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewMemberResponse(m))
}
