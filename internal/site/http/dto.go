package http

import (
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/pkg/request"
	"github.com/mossyoak/campsite-availability-backend/internal/site"
)

type CreateSiteRequest struct {
	CampgroundID  string `json:"campground_id" binding:"required,uuid"`
	Name          string `json:"name" binding:"required,max=100"`
	SiteType      string `json:"site_type" binding:"required,oneof=rv tent cabin other"`
	MaxRigLength  int    `json:"max_rig_length" binding:"omitempty,min=0,max=100"`
	HasElectric   bool   `json:"has_electric"`
	HasWater      bool   `json:"has_water"`
	HasSewer      bool   `json:"has_sewer"`
	AcceptsWalkIn bool   `json:"accepts_walk_in"`
}

type UpdateSiteRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	SiteType      *string `json:"site_type" binding:"omitempty,oneof=rv tent cabin other"`
	MaxRigLength  *int    `json:"max_rig_length" binding:"omitempty,min=0,max=100"`
	HasElectric   *bool   `json:"has_electric"`
	HasWater      *bool   `json:"has_water"`
	HasSewer      *bool   `json:"has_sewer"`
	AcceptsWalkIn *bool   `json:"accepts_walk_in"`
	Active        *bool   `json:"active"`
}

type ListSitesRequest struct {
	request.ListParams
	CampgroundID string `form:"campground_id" binding:"omitempty,uuid"`
	SiteType     string `form:"site_type" binding:"omitempty,oneof=rv tent cabin other"`
	ActiveOnly   bool   `form:"active_only"`
}

type SiteResponse struct {
	ID            string    `json:"id"`
	CampgroundID  string    `json:"campground_id"`
	Name          string    `json:"name"`
	SiteType      string    `json:"site_type"`
	MaxRigLength  int       `json:"max_rig_length"`
	HasElectric   bool      `json:"has_electric"`
	HasWater      bool      `json:"has_water"`
	HasSewer      bool      `json:"has_sewer"`
	AcceptsWalkIn bool      `json:"accepts_walk_in"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewSiteResponse(s *site.Site) SiteResponse {
	return SiteResponse{
		ID:            s.ID,
		CampgroundID:  s.CampgroundID,
		Name:          s.Name,
		SiteType:      string(s.SiteType),
		MaxRigLength:  s.MaxRigLength,
		HasElectric:   s.HasElectric,
		HasWater:      s.HasWater,
		HasSewer:      s.HasSewer,
		AcceptsWalkIn: s.AcceptsWalkIn,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
	}
}
