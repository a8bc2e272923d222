package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/response"
	"github.com/mossyoak/campsite-availability-backend/internal/site"
)

type Handler struct {
	service site.Service
}

func NewHandler(service site.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateSiteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), site.CreateRequest{
		CampgroundID:  body.CampgroundID,
		Name:          body.Name,
		SiteType:      site.Type(body.SiteType),
		MaxRigLength:  body.MaxRigLength,
		HasElectric:   body.HasElectric,
		HasWater:      body.HasWater,
		HasSewer:      body.HasSewer,
		AcceptsWalkIn: body.AcceptsWalkIn,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSiteResponse(created))
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

	c.JSON(http.StatusOK, NewSiteResponse(found))
}

func (h *Handler) List(c *gin.Context) {
	var query ListSitesRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	query.Normalize()

	filter := site.Filter{
		CampgroundID: query.CampgroundID,
		ActiveOnly:   query.ActiveOnly,
		Page:         query.Page,
		PageSize:     query.PageSize,
	}
	if query.SiteType != "" {
		filter.SiteTypes = []site.Type{site.Type(query.SiteType)}
	}

	sites, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SiteResponse, len(sites))
	for i, s := range sites {
		items[i] = NewSiteResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, query.Page, query.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateSiteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := site.UpdateRequest{
		Name:          body.Name,
		MaxRigLength:  body.MaxRigLength,
		HasElectric:   body.HasElectric,
		HasWater:      body.HasWater,
		HasSewer:      body.HasSewer,
		AcceptsWalkIn: body.AcceptsWalkIn,
		Active:        body.Active,
	}
	if body.SiteType != nil {
		t := site.Type(*body.SiteType)
		req.SiteType = &t
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSiteResponse(updated))
}

// Delete deactivates the site. Claim history survives; sites are never
// removed from the ledger's reference set.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
