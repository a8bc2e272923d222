package claim_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	"github.com/mossyoak/campsite-availability-backend/internal/claim/claimtest"
)

// The postgres ledger serializes check-and-insert with a per-site row lock;
// the in-memory ledger mirrors that with a mutex. These tests pin the
// semantics both implementations must share.

func TestInsertClaimSingleWinnerUnderContention(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	ledger := claimtest.NewLedger()

	ranges := []struct{ arrival, departure string }{
		{"2026-07-01", "2026-07-04"},
		{"2026-07-03", "2026-07-06"}, // overlaps the first at July 3
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ranges))
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, arrival, departure string) {
			defer wg.Done()
			rng := mustParse(t, arrival, departure)
			_, errs[i] = ledger.InsertClaim(ctx, claim.Claim{
				CampgroundID: "cg1",
				SiteID:       "site-b2",
				Range:        rng,
				Kind:         claim.KindReservation,
				Status:       claim.StatusActive,
			}, claim.InsertOptions{Now: now})
		}(i, r.arrival, r.departure)
	}
	wg.Wait()

	var winners, conflicts int
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		var conflict *claim.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Len(t, conflict.Blocking, 1, "loser must see the winner as blocker")
		assert.Equal(t, claim.KindReservation, conflict.Blocking[0].Kind)
		conflicts++
	}
	assert.Equal(t, 1, winners, "exactly one of the overlapping inserts may win")
	assert.Equal(t, 1, conflicts)
}

func TestTerminalTransitionRaceHasOneWinner(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	ledger := claimtest.NewLedger()

	expiry := now.Add(-time.Minute) // already past expiry
	hold, err := ledger.InsertClaim(ctx, claim.Claim{
		CampgroundID: "cg1",
		SiteID:       "site-a1",
		Range:        mustParse(t, "2026-06-15", "2026-06-18"),
		Kind:         claim.KindHold,
		Status:       claim.StatusActive,
		ExpiresAt:    &expiry,
	}, claim.InsertOptions{Now: now.Add(-time.Hour)})
	require.NoError(t, err)

	// A release and a sweep race for the same hold: exactly one terminal
	// state must result, and the loser sees the already-terminal status.
	var wg sync.WaitGroup
	var releaseErr error
	var swept int
	wg.Add(2)
	go func() {
		defer wg.Done()
		releaseErr = ledger.UpdateStatus(ctx, hold.ID, claim.StatusReleased, now)
	}()
	go func() {
		defer wg.Done()
		swept, _ = ledger.ExpireStale(ctx, now)
	}()
	wg.Wait()

	final, err := ledger.GetByID(ctx, hold.ID)
	require.NoError(t, err)
	assert.True(t, final.Status.Terminal())

	if releaseErr == nil {
		assert.Equal(t, claim.StatusReleased, final.Status)
		assert.Equal(t, 0, swept)
	} else {
		assert.ErrorIs(t, releaseErr, claim.ErrAlreadyTerminal)
		assert.Equal(t, claim.StatusExpired, final.Status)
		assert.Equal(t, 1, swept)
	}

	// Whatever won, a second transition attempt fails explicitly.
	err = ledger.UpdateStatus(ctx, hold.ID, claim.StatusReleased, now)
	assert.ErrorIs(t, err, claim.ErrAlreadyTerminal)
}
