package http

import (
	"github.com/mossyoak/campsite-availability-backend/internal/availability"
	claimHttp "github.com/mossyoak/campsite-availability-backend/internal/claim/http"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
)

// QueryRequest defines query parameters for an availability search.
type QueryRequest struct {
	CampgroundID    string `form:"campground_id" binding:"required,uuid"`
	Arrival         string `form:"arrival" binding:"required,datetime=2006-01-02"`
	Departure       string `form:"departure" binding:"required,datetime=2006-01-02"`
	EquipmentKind   string `form:"equipment_kind" binding:"omitempty,oneof=motorhome travel_trailer campervan tent car_camping"`
	EquipmentLength int    `form:"equipment_length" binding:"omitempty,min=1,max=100"`
	// SiteTypes narrows candidates, comma-separated (e.g. "rv,tent").
	SiteTypes string `form:"site_types"`
	// View=staff includes blocked sites with their blocking claims.
	View string `form:"view" binding:"omitempty,oneof=staff"`
}

type SiteTag struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SiteType      string `json:"site_type"`
	MaxRigLength  int    `json:"max_rig_length"`
	HasElectric   bool   `json:"has_electric"`
	HasWater      bool   `json:"has_water"`
	HasSewer      bool   `json:"has_sewer"`
	AcceptsWalkIn bool   `json:"accepts_walk_in"`
}

type SiteAvailabilityResponse struct {
	Site         SiteTag                `json:"site"`
	Available    bool                   `json:"available"`
	FitConfirmed bool                   `json:"fit_confirmed"`
	Blocking     []claimHttp.BlockerTag `json:"blocking,omitempty"`
}

type QueryResponse struct {
	CampgroundID string                     `json:"campground_id"`
	Arrival      string                     `json:"arrival"`
	Departure    string                     `json:"departure"`
	Sites        []SiteAvailabilityResponse `json:"sites"`
}

func NewSiteAvailabilityResponse(row *availability.SiteAvailability) SiteAvailabilityResponse {
	resp := SiteAvailabilityResponse{
		Site: SiteTag{
			ID:            row.Site.ID,
			Name:          row.Site.Name,
			SiteType:      string(row.Site.SiteType),
			MaxRigLength:  row.Site.MaxRigLength,
			HasElectric:   row.Site.HasElectric,
			HasWater:      row.Site.HasWater,
			HasSewer:      row.Site.HasSewer,
			AcceptsWalkIn: row.Site.AcceptsWalkIn,
		},
		Available:    row.Available,
		FitConfirmed: row.FitConfirmed,
	}
	for i := range row.Blocking {
		b := &row.Blocking[i]
		resp.Blocking = append(resp.Blocking, claimHttp.BlockerTag{
			ID:        b.ID,
			Kind:      string(b.Kind),
			Arrival:   b.Range.Arrival.Format(interval.DateLayout),
			Departure: b.Range.Departure.Format(interval.DateLayout),
		})
	}
	return resp
}
