package site

import (
	"net/http"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "site not found")
	ErrEmptyName         = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCampground = apperror.New(http.StatusBadRequest, "invalid campground_id")
	ErrInvalidSiteType   = apperror.New(http.StatusBadRequest, "invalid site type")
	ErrInvalidRigLength  = apperror.New(http.StatusBadRequest, "max_rig_length cannot be negative")
)

type Type string

const (
	TypeRV    Type = "rv"
	TypeTent  Type = "tent"
	TypeCabin Type = "cabin"
	TypeOther Type = "other"
)

// ValidTypes lists every accepted site type.
var ValidTypes = []Type{TypeRV, TypeTent, TypeCabin, TypeOther}

// Site is a bookable physical unit (e.g., "A1", "Riverside 12"). Identity is
// immutable; attributes change only through staff configuration, never through
// booking activity.
type Site struct {
	ID            string
	CampgroundID  string
	Name          string
	SiteType      Type
	MaxRigLength  int // feet; 0 means no rig supported
	HasElectric   bool
	HasWater      bool
	HasSewer      bool
	AcceptsWalkIn bool
	Active        bool
	CreatedAt     time.Time
}

// RVCapable reports whether the site can physically host rig-type equipment.
func (s Site) RVCapable() bool {
	return s.SiteType == TypeRV
}

// Filter defines parameters for listing sites.
type Filter struct {
	CampgroundID string
	SiteTypes    []Type
	ActiveOnly   bool
	Page         int
	PageSize     int
}
