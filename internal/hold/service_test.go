package hold_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	"github.com/mossyoak/campsite-availability-backend/internal/claim/claimtest"
	"github.com/mossyoak/campsite-availability-backend/internal/clock"
	"github.com/mossyoak/campsite-availability-backend/internal/hold"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
)

var testNow = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

func newService(ledger claim.Ledger, opts ...hold.Option) hold.Service {
	return hold.NewService(ledger, clock.NewFixed(testNow), opts...)
}

func createReq(arrival, departure string) hold.CreateRequest {
	a, _ := time.Parse(interval.DateLayout, arrival)
	d, _ := time.Parse(interval.DateLayout, departure)
	return hold.CreateRequest{
		CampgroundID: "cg1",
		SiteID:       "site-a1",
		Arrival:      a,
		Departure:    d,
		CreatedBy:    "staff-1",
	}
}

func TestCreateHold(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the default TTL when none is given", func(t *testing.T) {
		svc := newService(claimtest.NewLedger(), hold.WithDefaultTTL(20*time.Minute))

		h, err := svc.Create(ctx, createReq("2026-06-15", "2026-06-18"))
		require.NoError(t, err)
		assert.Equal(t, claim.KindHold, h.Kind)
		assert.Equal(t, claim.StatusActive, h.Status)
		require.NotNil(t, h.ExpiresAt)
		assert.Equal(t, testNow.Add(20*time.Minute), *h.ExpiresAt)
	})

	t.Run("honors an explicit TTL", func(t *testing.T) {
		svc := newService(claimtest.NewLedger())

		req := createReq("2026-06-15", "2026-06-18")
		req.TTLMinutes = 90
		h, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, testNow.Add(90*time.Minute), *h.ExpiresAt)
	})

	t.Run("rejects an invalid range before touching the ledger", func(t *testing.T) {
		svc := newService(claimtest.NewLedger())

		_, err := svc.Create(ctx, createReq("2026-06-18", "2026-06-15"))
		assert.ErrorIs(t, err, interval.ErrInvalidRange)

		_, err = svc.Create(ctx, createReq("2026-06-15", "2026-06-15"))
		assert.ErrorIs(t, err, interval.ErrInvalidRange)
	})

	t.Run("rejects a negative TTL", func(t *testing.T) {
		svc := newService(claimtest.NewLedger())

		req := createReq("2026-06-15", "2026-06-18")
		req.TTLMinutes = -5
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, hold.ErrInvalidTTL)
	})

	t.Run("conflict names the blocking claim", func(t *testing.T) {
		ledger := claimtest.NewLedger()
		svc := newService(ledger)

		first, err := svc.Create(ctx, createReq("2026-06-15", "2026-06-18"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createReq("2026-06-16", "2026-06-19"))
		var conflict *claim.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Len(t, conflict.Blocking, 1)
		assert.Equal(t, first.ID, conflict.Blocking[0].ID)
		assert.Equal(t, claim.KindHold, conflict.Blocking[0].Kind)
	})

	t.Run("back-to-back holds are legal", func(t *testing.T) {
		svc := newService(claimtest.NewLedger())

		_, err := svc.Create(ctx, createReq("2026-06-15", "2026-06-18"))
		require.NoError(t, err)
		_, err = svc.Create(ctx, createReq("2026-06-18", "2026-06-21"))
		assert.NoError(t, err)
	})

	t.Run("retries lock timeouts and then succeeds", func(t *testing.T) {
		ledger := claimtest.NewLedger()
		ledger.FailNextInserts(2, claim.ErrLockTimeout)
		svc := newService(ledger, hold.WithRetryAttempts(3))

		_, err := svc.Create(ctx, createReq("2026-06-15", "2026-06-18"))
		assert.NoError(t, err)
	})

	t.Run("surfaces lock timeout after retries exhaust", func(t *testing.T) {
		ledger := claimtest.NewLedger()
		ledger.FailNextInserts(10, claim.ErrLockTimeout)
		svc := newService(ledger, hold.WithRetryAttempts(2))

		_, err := svc.Create(ctx, createReq("2026-06-15", "2026-06-18"))
		assert.ErrorIs(t, err, claim.ErrLockTimeout)
	})

	t.Run("exactly one winner for concurrent overlapping holds", func(t *testing.T) {
		svc := newService(claimtest.NewLedger())

		var wg sync.WaitGroup
		errs := make([]error, 2)
		reqs := []hold.CreateRequest{
			createReq("2026-07-01", "2026-07-04"),
			createReq("2026-07-03", "2026-07-06"),
		}
		for i := range reqs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Create(ctx, reqs[i])
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				var conflict *claim.ConflictError
				assert.ErrorAs(t, err, &conflict)
			}
		}
		assert.Equal(t, 1, winners)
	})
}

func TestReleaseHold(t *testing.T) {
	ctx := context.Background()
	ledger := claimtest.NewLedger()
	svc := newService(ledger)

	h, err := svc.Create(ctx, createReq("2026-06-15", "2026-06-18"))
	require.NoError(t, err)

	t.Run("releases an active hold", func(t *testing.T) {
		require.NoError(t, svc.Release(ctx, h.ID, "staff-2"))

		released, err := ledger.GetByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, claim.StatusReleased, released.Status)
	})

	t.Run("releasing an already-terminal hold is an explicit error", func(t *testing.T) {
		err := svc.Release(ctx, h.ID, "staff-2")
		assert.ErrorIs(t, err, claim.ErrAlreadyTerminal)
	})

	t.Run("unknown hold id", func(t *testing.T) {
		err := svc.Release(ctx, "claim-999", "staff-2")
		assert.ErrorIs(t, err, hold.ErrNotFound)
	})

	t.Run("non-hold claims are not visible through the hold API", func(t *testing.T) {
		blk, err := ledger.InsertClaim(ctx, claim.Claim{
			CampgroundID: "cg1",
			SiteID:       "site-z9",
			Range:        mustRange(t, "2026-06-15", "2026-06-18"),
			Kind:         claim.KindBlackout,
			Status:       claim.StatusActive,
		}, claim.InsertOptions{Now: testNow})
		require.NoError(t, err)

		err = svc.Release(ctx, blk.ID, "staff-2")
		assert.ErrorIs(t, err, hold.ErrNotFound)
	})
}

func TestListActive(t *testing.T) {
	ctx := context.Background()
	ledger := claimtest.NewLedger()
	svc := newService(ledger)

	fresh, err := svc.Create(ctx, createReq("2026-06-15", "2026-06-18"))
	require.NoError(t, err)

	// A hold already past expiry but not yet swept: must not be listed.
	stale := testNow.Add(-time.Minute)
	_, err = ledger.InsertClaim(ctx, claim.Claim{
		CampgroundID: "cg1",
		SiteID:       "site-b2",
		Range:        mustRange(t, "2026-06-20", "2026-06-22"),
		Kind:         claim.KindHold,
		Status:       claim.StatusActive,
		ExpiresAt:    &stale,
	}, claim.InsertOptions{Now: testNow.Add(-time.Hour)})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx, "cg1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, fresh.ID, active[0].ID)
}

func TestExpireStale(t *testing.T) {
	ctx := context.Background()
	ledger := claimtest.NewLedger()
	svc := newService(ledger)

	stale := testNow.Add(-time.Minute)
	sites := []string{"s1", "s2", "s3"}
	for _, siteID := range sites {
		_, err := ledger.InsertClaim(ctx, claim.Claim{
			CampgroundID: "cg1",
			SiteID:       siteID,
			Range:        mustRange(t, "2026-06-15", "2026-06-18"),
			Kind:         claim.KindHold,
			Status:       claim.StatusActive,
			ExpiresAt:    &stale,
		}, claim.InsertOptions{Now: testNow.Add(-time.Hour)})
		require.NoError(t, err)
	}
	// One hold still in the future must survive the sweep.
	fresh, err := svc.Create(ctx, createReq("2026-06-20", "2026-06-22"))
	require.NoError(t, err)

	count, err := svc.ExpireStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(sites), count, "exactly the stale holds are expired")
	assert.Equal(t, len(sites), ledger.Count(claim.StatusExpired))

	remaining, err := svc.ListActive(ctx, "cg1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, fresh.ID, remaining[0].ID)

	// Sweep convergence: a second run expires nothing further.
	count, err = svc.ExpireStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func mustRange(t *testing.T, arrival, departure string) interval.DateRange {
	t.Helper()
	r, err := interval.Parse(arrival, departure)
	require.NoError(t, err)
	return r
}
