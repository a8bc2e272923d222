package http

// CreateReservationRequest confirms occupancy of a site. When hold_id is set
// the referenced hold is consumed in the same transaction.
type CreateReservationRequest struct {
	CampgroundID string `json:"campground_id" binding:"required,uuid"`
	SiteID       string `json:"site_id" binding:"required,uuid"`
	Arrival      string `json:"arrival" binding:"required,datetime=2006-01-02"`
	Departure    string `json:"departure" binding:"required,datetime=2006-01-02"`
	HoldID       string `json:"hold_id" binding:"omitempty,uuid"`
	Note         string `json:"note" binding:"omitempty,max=500"`
}
