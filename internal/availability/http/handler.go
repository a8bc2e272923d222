package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mossyoak/campsite-availability-backend/internal/availability"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/response"
	"github.com/mossyoak/campsite-availability-backend/internal/rigfit"
	"github.com/mossyoak/campsite-availability-backend/internal/site"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Query(c *gin.Context) {
	var query QueryRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	rng, err := interval.Parse(query.Arrival, query.Departure)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := availability.Request{
		CampgroundID: query.CampgroundID,
		Range:        rng,
		StaffView:    query.View == "staff",
	}

	if query.EquipmentKind != "" {
		req.Profile = &rigfit.EquipmentProfile{
			Kind:   rigfit.EquipmentKind(query.EquipmentKind),
			Length: query.EquipmentLength,
		}
	}

	if query.SiteTypes != "" {
		for _, t := range strings.Split(query.SiteTypes, ",") {
			req.SiteTypes = append(req.SiteTypes, site.Type(strings.TrimSpace(t)))
		}
	}

	rows, err := h.service.Query(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	sites := make([]SiteAvailabilityResponse, len(rows))
	for i := range rows {
		sites[i] = NewSiteAvailabilityResponse(&rows[i])
	}

	c.JSON(http.StatusOK, QueryResponse{
		CampgroundID: query.CampgroundID,
		Arrival:      query.Arrival,
		Departure:    query.Departure,
		Sites:        sites,
	})
}
