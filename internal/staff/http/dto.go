package http

import (
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/staff"
)

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateStaffRequest is the payload for POST /v1/staff (admin only).
type CreateStaffRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
	IsAdmin     bool   `json:"is_admin"`
}

// MemberResponse is the shape of staff data returned by the API.
type MemberResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name,omitempty"`
	IsAdmin     bool       `json:"is_admin"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse is the response for POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	Member      MemberResponse `json:"member"`
}

// MeResponse is the response for GET /v1/auth/me.
type MeResponse struct {
	Member MemberResponse `json:"member"`
}

func NewMemberResponse(m *staff.Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		IsAdmin:     m.IsAdmin,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		LastLoginAt: m.LastLoginAt,
	}
}
