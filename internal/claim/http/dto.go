package http

import (
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
)

// CreateClaimRequest creates a staff-entered blackout or closure.
type CreateClaimRequest struct {
	CampgroundID string `json:"campground_id" binding:"required,uuid"`
	SiteID       string `json:"site_id" binding:"required,uuid"`
	Arrival      string `json:"arrival" binding:"required,datetime=2006-01-02"`
	Departure    string `json:"departure" binding:"required,datetime=2006-01-02"`
	Kind         string `json:"kind" binding:"required,oneof=blackout closure"`
	Note         string `json:"note" binding:"omitempty,max=500"`
}

type ClaimResponse struct {
	ID           string     `json:"id"`
	CampgroundID string     `json:"campground_id"`
	SiteID       string     `json:"site_id"`
	Arrival      string     `json:"arrival"`
	Departure    string     `json:"departure"`
	Kind         string     `json:"kind"`
	Status       string     `json:"status"`
	CreatedBy    *string    `json:"created_by,omitempty"`
	Note         *string    `json:"note,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewClaimResponse(c *claim.Claim) ClaimResponse {
	return ClaimResponse{
		ID:           c.ID,
		CampgroundID: c.CampgroundID,
		SiteID:       c.SiteID,
		Arrival:      c.Range.Arrival.Format(interval.DateLayout),
		Departure:    c.Range.Departure.Format(interval.DateLayout),
		Kind:         string(c.Kind),
		Status:       string(c.Status),
		CreatedBy:    c.CreatedBy,
		Note:         c.Note,
		ExpiresAt:    c.ExpiresAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// BlockerTag is the compact description of a blocking claim inside a 409 body.
type BlockerTag struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
}

// ConflictResponse is the JSON body for 409 responses on any claim-creating
// endpoint. It names every blocking claim so staff tooling gets full context.
type ConflictResponse struct {
	Error    string       `json:"error"`
	Blocking []BlockerTag `json:"blocking"`
}

func NewConflictResponse(e *claim.ConflictError) ConflictResponse {
	blocking := make([]BlockerTag, len(e.Blocking))
	for i, b := range e.Blocking {
		blocking[i] = BlockerTag{
			ID:        b.ID,
			Kind:      string(b.Kind),
			Arrival:   b.Range.Arrival.Format(interval.DateLayout),
			Departure: b.Range.Departure.Format(interval.DateLayout),
		}
	}
	return ConflictResponse{
		Error:    e.Error(),
		Blocking: blocking,
	}
}
