package staff

import (
	"net/http"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "staff member not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactive           = apperror.New(http.StatusForbidden, "staff account is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

// Member is a staff account. Every hold, blackout, and manual reservation is
// attributed to the member that created it.
type Member struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  *string
	IsAdmin      bool
	Active       bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
