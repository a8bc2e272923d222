package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mossyoak/campsite-availability-backend/internal/auth"
	claimHttp "github.com/mossyoak/campsite-availability-backend/internal/claim/http"
	"github.com/mossyoak/campsite-availability-backend/internal/hold"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/response"
)

type Handler struct {
	service hold.Service
}

func NewHandler(service hold.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateHoldRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	arrival, _ := time.Parse(interval.DateLayout, body.Arrival)
	departure, _ := time.Parse(interval.DateLayout, body.Departure)

	created, err := h.service.Create(c.Request.Context(), hold.CreateRequest{
		CampgroundID: body.CampgroundID,
		SiteID:       body.SiteID,
		Arrival:      arrival,
		Departure:    departure,
		TTLMinutes:   body.HoldMinutes,
		Note:         body.Note,
		CreatedBy:    auth.GetStaffID(c),
	})
	if err != nil {
		claimHttp.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, claimHttp.NewClaimResponse(created))
}

func (h *Handler) List(c *gin.Context) {
	var query ListHoldsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	holds, err := h.service.ListActive(c.Request.Context(), query.CampgroundID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]claimHttp.ClaimResponse, len(holds))
	for i := range holds {
		items[i] = claimHttp.NewClaimResponse(&holds[i])
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Delete releases an active hold. Releasing a hold that already reached a
// terminal status is a 409, never a silent no-op.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Release(c.Request.Context(), id, auth.GetStaffID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExpireStale sweeps every lapsed hold into the expired status. Meant to be
// hit by an external scheduler; running it twice in a row is harmless.
func (h *Handler) ExpireStale(c *gin.Context) {
	count, err := h.service.ExpireStale(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpireStaleResponse{Expired: count})
}
