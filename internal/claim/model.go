package claim

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/interval"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "claim not found")
	ErrSiteNotFound    = apperror.New(http.StatusNotFound, "site not found")
	ErrAlreadyTerminal = apperror.New(http.StatusConflict, "claim is already in a terminal status")
	ErrInvalidKind     = apperror.New(http.StatusBadRequest, "invalid claim kind")

	// ErrLockTimeout means the per-site serialization point could not be
	// acquired within the bounded lock timeout. Contention on a popular
	// site/date is expected; callers retry a small number of times before
	// surfacing this to the end user.
	ErrLockTimeout = apperror.New(http.StatusServiceUnavailable, "site is busy, please try again")
)

type Kind string

const (
	KindReservation Kind = "reservation"
	KindHold        Kind = "hold"
	KindBlackout    Kind = "blackout"
	KindClosure     Kind = "closure"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusReleased  Status = "released"
	StatusExpired   Status = "expired"
	StatusCaptured  Status = "captured"
)

// Terminal reports whether the status permits no further transitions.
// Every status other than active is terminal.
func (s Status) Terminal() bool {
	return s != StatusActive
}

// Claim is the unifying record behind everything that can block a site for a
// date range: confirmed reservations, staff holds, blackout dates, and
// maintenance closures. The ledger never allows two blocking claims with
// overlapping ranges on the same site.
type Claim struct {
	ID           string
	CampgroundID string
	SiteID       string
	Range        interval.DateRange
	Kind         Kind
	Status       Status
	CreatedBy    *string
	Note         *string
	ExpiresAt    *time.Time // holds only
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBlockingAt is the single place blocking-ness is decided. A claim blocks
// iff its status is active and, for holds, its expiry is still in the future:
// a hold past its expiry but not yet swept must not block reads.
func (c Claim) IsBlockingAt(now time.Time) bool {
	if c.Status != StatusActive {
		return false
	}
	if c.Kind == KindHold && c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
		return false
	}
	return true
}

// ConflictError reports that an insert was rejected because blocking claims
// overlap the requested range. It carries every blocker, not just the first,
// so staff tooling can present complete context.
type ConflictError struct {
	Blocking []Claim
}

func (e *ConflictError) Error() string {
	if len(e.Blocking) == 1 {
		b := e.Blocking[0]
		return fmt.Sprintf("requested dates are blocked by %s %s", b.Kind, b.ID)
	}
	return fmt.Sprintf("requested dates are blocked by %d existing claims", len(e.Blocking))
}

// InsertOptions tunes the atomic check-and-insert.
type InsertOptions struct {
	// Now pins the blocking check; expired-but-unswept holds do not count.
	Now time.Time
	// ExcludeClaimID is ignored during the conflict check, used when a claim
	// is re-validated or superseded by its own owner.
	ExcludeClaimID string
	// CaptureHoldID, when set, transitions that hold to captured within the
	// same transaction that inserts the new claim.
	CaptureHoldID string
}
