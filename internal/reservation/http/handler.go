package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mossyoak/campsite-availability-backend/internal/auth"
	claimHttp "github.com/mossyoak/campsite-availability-backend/internal/claim/http"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/response"
	"github.com/mossyoak/campsite-availability-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	arrival, _ := time.Parse(interval.DateLayout, body.Arrival)
	departure, _ := time.Parse(interval.DateLayout, body.Departure)

	created, err := h.service.Create(c.Request.Context(), reservation.CreateRequest{
		CampgroundID: body.CampgroundID,
		SiteID:       body.SiteID,
		Arrival:      arrival,
		Departure:    departure,
		HoldID:       body.HoldID,
		Note:         body.Note,
		CreatedBy:    auth.GetStaffID(c),
	})
	if err != nil {
		claimHttp.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, claimHttp.NewClaimResponse(created))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, claimHttp.NewClaimResponse(found))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id, auth.GetStaffID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
