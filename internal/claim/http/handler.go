package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mossyoak/campsite-availability-backend/internal/auth"
	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/response"
)

type Handler struct {
	service claim.Service
}

func NewHandler(service claim.Service) *Handler {
	return &Handler{service: service}
}

// WriteError maps a claim-layer error to its HTTP response. Conflicts get the
// structured 409 body with every blocker named; everything else goes through
// the shared apperror mapping. Shared by the hold and reservation handlers.
func WriteError(c *gin.Context, err error) {
	var conflict *claim.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, NewConflictResponse(conflict))
		return
	}
	response.Error(c, err)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateClaimRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	arrival, _ := time.Parse(interval.DateLayout, body.Arrival)
	departure, _ := time.Parse(interval.DateLayout, body.Departure)

	created, err := h.service.CreateBlock(c.Request.Context(), claim.CreateBlockRequest{
		CampgroundID: body.CampgroundID,
		SiteID:       body.SiteID,
		Arrival:      arrival,
		Departure:    departure,
		Kind:         claim.Kind(body.Kind),
		Note:         body.Note,
		CreatedBy:    auth.GetStaffID(c),
	})
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewClaimResponse(created))
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

	c.JSON(http.StatusOK, NewClaimResponse(found))
}

func (h *Handler) Release(c *gin.Context) {
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

// ListBySite returns the full claim history of one site, terminal claims
// included; the audit trail is append-only.
func (h *Handler) ListBySite(c *gin.Context) {
	siteID := c.Param("id")
	if _, err := uuid.Parse(siteID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	claims, err := h.service.ListBySite(c.Request.Context(), siteID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ClaimResponse, len(claims))
	for i := range claims {
		items[i] = NewClaimResponse(&claims[i])
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
