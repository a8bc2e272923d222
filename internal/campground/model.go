package campground

import (
	"net/http"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "campground not found")
	ErrEmptyName = apperror.New(http.StatusBadRequest, "name cannot be empty")
)

// Campground owns a set of sites. Configuration only; booking activity never
// mutates it.
type Campground struct {
	ID        string
	Name      string
	Timezone  string
	CreatedAt time.Time
}

type Filter struct {
	Page     int
	PageSize int
}
