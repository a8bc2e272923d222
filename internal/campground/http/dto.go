package http

import (
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/campground"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/request"
)

type CreateCampgroundRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Timezone string `json:"timezone" binding:"omitempty,max=64"`
}

type ListCampgroundsRequest struct {
	request.ListParams
}

type CampgroundResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCampgroundResponse(cg *campground.Campground) CampgroundResponse {
	return CampgroundResponse{
		ID:        cg.ID,
		Name:      cg.Name,
		Timezone:  cg.Timezone,
		CreatedAt: cg.CreatedAt,
	}
}
