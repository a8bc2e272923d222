package http

// CreateHoldRequest provisionally secures a site for a date range.
type CreateHoldRequest struct {
	CampgroundID string `json:"campground_id" binding:"required,uuid"`
	SiteID       string `json:"site_id" binding:"required,uuid"`
	Arrival      string `json:"arrival" binding:"required,datetime=2006-01-02"`
	Departure    string `json:"departure" binding:"required,datetime=2006-01-02"`
	// HoldMinutes overrides the configured default TTL when positive.
	HoldMinutes int    `json:"hold_minutes" binding:"omitempty,min=1,max=1440"`
	Note        string `json:"note" binding:"omitempty,max=500"`
}

// ListHoldsRequest filters the active-hold listing.
type ListHoldsRequest struct {
	CampgroundID string `form:"campground_id" binding:"required,uuid"`
}

type ExpireStaleResponse struct {
	Expired int `json:"expired"`
}
