package interval

import (
	"net/http"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/pkg/apperror"
)

var (
	ErrInvalidRange  = apperror.New(http.StatusBadRequest, "arrival date must be before departure date")
	ErrMalformedDate = apperror.New(http.StatusBadRequest, "dates must be valid calendar dates in YYYY-MM-DD format")
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateRange is a half-open interval [Arrival, Departure) of calendar dates.
// Both endpoints are normalized to midnight UTC. A departure on day N and an
// arrival on day N do not overlap, so back-to-back turnover is legal.
type DateRange struct {
	Arrival   time.Time
	Departure time.Time
}

// New builds a validated DateRange from two instants, truncating both to
// midnight UTC.
func New(arrival, departure time.Time) (DateRange, error) {
	r := DateRange{
		Arrival:   Truncate(arrival),
		Departure: Truncate(departure),
	}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Parse builds a validated DateRange from YYYY-MM-DD strings.
func Parse(arrival, departure string) (DateRange, error) {
	a, err := time.Parse(DateLayout, arrival)
	if err != nil {
		return DateRange{}, ErrMalformedDate
	}
	d, err := time.Parse(DateLayout, departure)
	if err != nil {
		return DateRange{}, ErrMalformedDate
	}
	return New(a, d)
}

// Validate rejects ranges with non-positive length.
func (r DateRange) Validate() error {
	if !r.Arrival.Before(r.Departure) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps reports whether two half-open ranges intersect:
// a.Arrival < b.Departure && b.Arrival < a.Departure.
// Total and symmetric; a shared departure/arrival day is not an overlap.
func Overlaps(a, b DateRange) bool {
	return a.Arrival.Before(b.Departure) && b.Arrival.Before(a.Departure)
}

// Nights returns the number of nights covered by the range.
func (r DateRange) Nights() int {
	return int(r.Departure.Sub(r.Arrival).Hours() / 24)
}

// Truncate normalizes an instant to midnight UTC.
func Truncate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
