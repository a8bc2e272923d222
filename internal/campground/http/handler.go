package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mossyoak/campsite-availability-backend/internal/campground"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/response"
)

type Handler struct {
	service campground.Service
}

func NewHandler(service campground.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCampgroundRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), campground.CreateRequest{
		Name:     body.Name,
		Timezone: body.Timezone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCampgroundResponse(created))
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

	c.JSON(http.StatusOK, NewCampgroundResponse(found))
}

func (h *Handler) List(c *gin.Context) {
	var query ListCampgroundsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	query.Normalize()

	campgrounds, total, err := h.service.List(c.Request.Context(), campground.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CampgroundResponse, len(campgrounds))
	for i, cg := range campgrounds {
		items[i] = NewCampgroundResponse(cg)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, query.Page, query.PageSize, total))
}
