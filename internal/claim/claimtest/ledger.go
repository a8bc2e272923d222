// Package claimtest provides an in-memory Ledger with the same conflict and
// lifecycle semantics as the postgres implementation, serialized by a mutex
// instead of row locks. Service tests run against it with a fixed clock.
package claimtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
)

type Ledger struct {
	mu     sync.Mutex
	nextID int
	claims map[string]*claim.Claim

	// SiteExists gates InsertClaim like the FOR UPDATE site lookup does;
	// nil means every site exists.
	SiteExists func(siteID string) bool

	// FailInsertsWith, when set, makes the next InsertClaim calls return the
	// given error (used to exercise retry paths).
	FailInsertsWith error
	failsRemaining  int
}

func NewLedger() *Ledger {
	return &Ledger{claims: make(map[string]*claim.Claim)}
}

// FailNextInserts makes the next n InsertClaim calls fail with err.
func (l *Ledger) FailNextInserts(n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.FailInsertsWith = err
	l.failsRemaining = n
}

func (l *Ledger) ActiveClaims(ctx context.Context, siteID string, window interval.DateRange, now time.Time) ([]claim.Claim, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blockingLocked(siteID, window, now, ""), nil
}

func (l *Ledger) InsertClaim(ctx context.Context, c claim.Claim, opts claim.InsertOptions) (claim.Claim, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failsRemaining > 0 {
		l.failsRemaining--
		return claim.Claim{}, l.FailInsertsWith
	}

	if l.SiteExists != nil && !l.SiteExists(c.SiteID) {
		return claim.Claim{}, claim.ErrSiteNotFound
	}

	blocking := l.blockingLocked(c.SiteID, c.Range, opts.Now, opts.ExcludeClaimID)
	if len(blocking) > 0 {
		return claim.Claim{}, &claim.ConflictError{Blocking: blocking}
	}

	if opts.CaptureHoldID != "" {
		if err := l.transitionLocked(opts.CaptureHoldID, claim.StatusCaptured, opts.Now); err != nil {
			return claim.Claim{}, err
		}
	}

	l.nextID++
	c.ID = fmt.Sprintf("claim-%d", l.nextID)
	c.CreatedAt = opts.Now
	c.UpdatedAt = opts.Now
	stored := c
	l.claims[c.ID] = &stored
	return c, nil
}

func (l *Ledger) GetByID(ctx context.Context, id string) (claim.Claim, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.claims[id]
	if !ok {
		return claim.Claim{}, claim.ErrNotFound
	}
	return *c, nil
}

func (l *Ledger) UpdateStatus(ctx context.Context, id string, to claim.Status, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transitionLocked(id, to, now)
}

func (l *Ledger) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for _, c := range l.claims {
		if c.Kind == claim.KindHold && c.Status == claim.StatusActive &&
			c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
			c.Status = claim.StatusExpired
			c.UpdatedAt = now
			count++
		}
	}
	return count, nil
}

func (l *Ledger) ListActiveHolds(ctx context.Context, campgroundID string, now time.Time) ([]claim.Claim, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []claim.Claim
	for _, c := range l.claims {
		if c.Kind != claim.KindHold || c.CampgroundID != campgroundID {
			continue
		}
		if c.Status != claim.StatusActive || c.ExpiresAt == nil || !c.ExpiresAt.After(now) {
			continue
		}
		result = append(result, *c)
	}
	sortClaims(result)
	return result, nil
}

func (l *Ledger) ListBySite(ctx context.Context, siteID string) ([]claim.Claim, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result []claim.Claim
	for _, c := range l.claims {
		if c.SiteID == siteID {
			result = append(result, *c)
		}
	}
	sortClaims(result)
	return result, nil
}

// Count returns how many claims match the given status (test assertions).
func (l *Ledger) Count(status claim.Status) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.claims {
		if c.Status == status {
			n++
		}
	}
	return n
}

func (l *Ledger) blockingLocked(siteID string, window interval.DateRange, now time.Time, excludeID string) []claim.Claim {
	var result []claim.Claim
	for _, c := range l.claims {
		if c.SiteID != siteID || c.ID == excludeID {
			continue
		}
		if !c.IsBlockingAt(now) {
			continue
		}
		if interval.Overlaps(c.Range, window) {
			result = append(result, *c)
		}
	}
	sortClaims(result)
	return result
}

func (l *Ledger) transitionLocked(id string, to claim.Status, now time.Time) error {
	c, ok := l.claims[id]
	if !ok {
		return claim.ErrNotFound
	}
	if c.Status.Terminal() {
		return claim.ErrAlreadyTerminal
	}
	c.Status = to
	c.UpdatedAt = now
	return nil
}

func sortClaims(claims []claim.Claim) {
	sort.Slice(claims, func(i, j int) bool {
		if !claims[i].Range.Arrival.Equal(claims[j].Range.Arrival) {
			return claims[i].Range.Arrival.Before(claims[j].Range.Arrival)
		}
		return claims[i].ID < claims[j].ID
	})
}
