package reservation_test

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
	"github.com/mossyoak/campsite-availability-backend/internal/reservation"
)

var testNow = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

func createReq(siteID, arrival, departure string) reservation.CreateRequest {
	a, _ := time.Parse(interval.DateLayout, arrival)
	d, _ := time.Parse(interval.DateLayout, departure)
	return reservation.CreateRequest{
		CampgroundID: "cg1",
		SiteID:       siteID,
		Arrival:      a,
		Departure:    d,
		CreatedBy:    "staff-1",
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("simultaneous overlapping reservations have exactly one winner", func(t *testing.T) {
		ledger := claimtest.NewLedger()
		svc := reservation.NewService(ledger, clock.NewFixed(testNow), 0)

		// One for July 1-4 and one for July 3-6, overlapping at July 3.
		reqs := []reservation.CreateRequest{
			createReq("site-b2", "2026-07-01", "2026-07-04"),
			createReq("site-b2", "2026-07-03", "2026-07-06"),
		}

		var wg sync.WaitGroup
		results := make([]*claim.Claim, 2)
		errs := make([]error, 2)
		for i := range reqs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = svc.Create(ctx, reqs[i])
			}(i)
		}
		wg.Wait()

		var winner *claim.Claim
		var loserErr error
		for i := range errs {
			if errs[i] == nil {
				winner = results[i]
			} else {
				loserErr = errs[i]
			}
		}
		require.NotNil(t, winner, "one reservation must succeed")
		require.Error(t, loserErr, "the other must observe a conflict")

		var conflict *claim.ConflictError
		require.ErrorAs(t, loserErr, &conflict)
		require.Len(t, conflict.Blocking, 1)
		assert.Equal(t, winner.ID, conflict.Blocking[0].ID, "conflict must name the winner")
	})

	t.Run("invalid range rejected before the ledger", func(t *testing.T) {
		svc := reservation.NewService(claimtest.NewLedger(), clock.NewFixed(testNow), 0)
		_, err := svc.Create(ctx, createReq("site-b2", "2026-07-04", "2026-07-01"))
		assert.ErrorIs(t, err, interval.ErrInvalidRange)
	})
}

func TestCreateReservationCapturingHold(t *testing.T) {
	ctx := context.Background()
	ledger := claimtest.NewLedger()
	holdSvc := hold.NewService(ledger, clock.NewFixed(testNow))
	svc := reservation.NewService(ledger, clock.NewFixed(testNow), 0)

	a, _ := time.Parse(interval.DateLayout, "2026-06-15")
	d, _ := time.Parse(interval.DateLayout, "2026-06-18")
	h, err := holdSvc.Create(ctx, hold.CreateRequest{
		CampgroundID: "cg1",
		SiteID:       "site-a1",
		Arrival:      a,
		Departure:    d,
		CreatedBy:    "staff-1",
	})
	require.NoError(t, err)

	t.Run("capture supersedes the hold atomically", func(t *testing.T) {
		req := createReq("site-a1", "2026-06-15", "2026-06-18")
		req.HoldID = h.ID

		res, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, claim.KindReservation, res.Kind)

		captured, err := ledger.GetByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, claim.StatusCaptured, captured.Status)
	})

	t.Run("a captured hold cannot be captured again", func(t *testing.T) {
		req := createReq("site-a1", "2026-06-20", "2026-06-22")
		req.HoldID = h.ID

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, claim.ErrAlreadyTerminal)
	})

	t.Run("hold on a different site is rejected", func(t *testing.T) {
		h2, err := holdSvc.Create(ctx, hold.CreateRequest{
			CampgroundID: "cg1",
			SiteID:       "site-c3",
			Arrival:      a,
			Departure:    d,
		})
		require.NoError(t, err)

		req := createReq("site-a1", "2026-06-20", "2026-06-22")
		req.HoldID = h2.ID
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, reservation.ErrHoldMismatch)
	})

	t.Run("unknown hold id", func(t *testing.T) {
		req := createReq("site-a1", "2026-06-20", "2026-06-22")
		req.HoldID = "claim-404"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, reservation.ErrHoldNotFound)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()
	ledger := claimtest.NewLedger()
	svc := reservation.NewService(ledger, clock.NewFixed(testNow), 0)

	res, err := svc.Create(ctx, createReq("site-a1", "2026-06-15", "2026-06-18"))
	require.NoError(t, err)

	t.Run("cancel frees the dates", func(t *testing.T) {
		require.NoError(t, svc.Cancel(ctx, res.ID, "staff-1"))

		// The same window can be claimed again.
		_, err := svc.Create(ctx, createReq("site-a1", "2026-06-15", "2026-06-18"))
		assert.NoError(t, err)
	})

	t.Run("double cancel is an explicit error", func(t *testing.T) {
		err := svc.Cancel(ctx, res.ID, "staff-1")
		assert.ErrorIs(t, err, claim.ErrAlreadyTerminal)
	})

	t.Run("cancel of a non-reservation claim is not found", func(t *testing.T) {
		err := svc.Cancel(ctx, "claim-404", "staff-1")
		assert.ErrorIs(t, err, reservation.ErrNotFound)
	})
}
