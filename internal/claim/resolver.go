package claim

import (
	"context"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/interval"
)

// Decision is the outcome of an availability check: either the site is free
// for the range, or it is blocked and Blocking lists every claim in the way.
type Decision struct {
	Available bool
	Blocking  []Claim
}

// Resolver answers "may this site be claimed for this range" by consulting
// the ledger. It has no state of its own and never writes.
type Resolver struct {
	ledger Ledger
}

func NewResolver(ledger Ledger) *Resolver {
	return &Resolver{ledger: ledger}
}

// CheckAvailability returns every blocking claim overlapping the range,
// excluding excludeClaimID (used when a claim is re-validated by its own
// owner). The read path applies IsBlockingAt again so an expired-but-unswept
// hold never blocks, even if the store returned it.
func (r *Resolver) CheckAvailability(ctx context.Context, siteID string, rng interval.DateRange, excludeClaimID string, now time.Time) (Decision, error) {
	claims, err := r.ledger.ActiveClaims(ctx, siteID, rng, now)
	if err != nil {
		return Decision{}, err
	}

	var blocking []Claim
	for _, c := range claims {
		if c.ID == excludeClaimID {
			continue
		}
		if !c.IsBlockingAt(now) {
			continue
		}
		if interval.Overlaps(c.Range, rng) {
			blocking = append(blocking, c)
		}
	}

	if len(blocking) > 0 {
		return Decision{Available: false, Blocking: blocking}, nil
	}
	return Decision{Available: true}, nil
}
