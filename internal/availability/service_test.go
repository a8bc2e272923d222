package availability_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossyoak/campsite-availability-backend/internal/availability"
	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	"github.com/mossyoak/campsite-availability-backend/internal/claim/claimtest"
	"github.com/mossyoak/campsite-availability-backend/internal/clock"
	"github.com/mossyoak/campsite-availability-backend/internal/hold"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
	"github.com/mossyoak/campsite-availability-backend/internal/rigfit"
	"github.com/mossyoak/campsite-availability-backend/internal/site"
)

var testNow = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

// fakeSiteRepo serves a fixed site inventory ordered by name then id, like
// the postgres repository does.
type fakeSiteRepo struct {
	sites []*site.Site
}

func (f *fakeSiteRepo) Create(ctx context.Context, s *site.Site) error { return nil }

func (f *fakeSiteRepo) GetByID(ctx context.Context, id string) (*site.Site, error) {
	for _, s := range f.sites {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, site.ErrNotFound
}

func (f *fakeSiteRepo) Update(ctx context.Context, s *site.Site) error { return nil }

func (f *fakeSiteRepo) List(ctx context.Context, filter site.Filter) ([]*site.Site, int, error) {
	var result []*site.Site
	for _, s := range f.sites {
		if filter.CampgroundID != "" && s.CampgroundID != filter.CampgroundID {
			continue
		}
		if filter.ActiveOnly && !s.Active {
			continue
		}
		if len(filter.SiteTypes) > 0 {
			match := false
			for _, t := range filter.SiteTypes {
				if s.SiteType == t {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, len(result), nil
}

func testInventory() *fakeSiteRepo {
	return &fakeSiteRepo{sites: []*site.Site{
		{ID: "s1", CampgroundID: "cg1", Name: "A1", SiteType: site.TypeRV, MaxRigLength: 30, AcceptsWalkIn: true, Active: true},
		{ID: "s2", CampgroundID: "cg1", Name: "A2", SiteType: site.TypeRV, MaxRigLength: 40, AcceptsWalkIn: true, Active: true},
		{ID: "s3", CampgroundID: "cg1", Name: "T1", SiteType: site.TypeTent, AcceptsWalkIn: true, Active: true},
		{ID: "s4", CampgroundID: "cg1", Name: "X9", SiteType: site.TypeRV, MaxRigLength: 45, Active: true},
		{ID: "s5", CampgroundID: "cg1", Name: "Z1", SiteType: site.TypeRV, MaxRigLength: 45, Active: false},
		{ID: "s6", CampgroundID: "cg2", Name: "B1", SiteType: site.TypeCabin, AcceptsWalkIn: true, Active: true},
	}}
}

func query(campgroundID, arrival, departure string) availability.Request {
	rng, _ := interval.Parse(arrival, departure)
	return availability.Request{CampgroundID: campgroundID, Range: rng}
}

func TestQueryAvailability(t *testing.T) {
	ctx := context.Background()
	ledger := claimtest.NewLedger()
	resolver := claim.NewResolver(ledger)
	svc := availability.NewService(testInventory(), resolver, clock.NewFixed(testNow))
	holdSvc := hold.NewService(ledger, clock.NewFixed(testNow))

	t.Run("empty ledger offers every active compatible site in order", func(t *testing.T) {
		result, err := svc.Query(ctx, query("cg1", "2026-06-15", "2026-06-18"))
		require.NoError(t, err)
		require.Len(t, result, 4, "inactive and foreign sites are excluded")

		names := make([]string, len(result))
		for i, r := range result {
			names[i] = r.Site.Name
			assert.True(t, r.Available)
			assert.False(t, r.FitConfirmed, "no profile means unconfirmed fit")
		}
		assert.Equal(t, []string{"A1", "A2", "T1", "X9"}, names)
	})

	t.Run("35ft motorhome drops undersized sites entirely", func(t *testing.T) {
		req := query("cg1", "2026-06-15", "2026-06-18")
		req.Profile = &rigfit.EquipmentProfile{Kind: rigfit.KindMotorhome, Length: 35}

		result, err := svc.Query(ctx, req)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "A2", result[0].Site.Name)
		assert.Equal(t, "X9", result[1].Site.Name)
		for _, r := range result {
			assert.True(t, r.FitConfirmed)
		}
	})

	t.Run("tent profile is never excluded on length grounds", func(t *testing.T) {
		req := query("cg1", "2026-06-15", "2026-06-18")
		req.Profile = &rigfit.EquipmentProfile{Kind: rigfit.KindTent}

		result, err := svc.Query(ctx, req)
		require.NoError(t, err)
		// X9 does not accept walk-in guests; the rest do.
		names := make([]string, len(result))
		for i, r := range result {
			names[i] = r.Site.Name
		}
		assert.Equal(t, []string{"A1", "A2", "T1"}, names)
	})

	t.Run("site type filter narrows candidates", func(t *testing.T) {
		req := query("cg1", "2026-06-15", "2026-06-18")
		req.SiteTypes = []site.Type{site.TypeTent}

		result, err := svc.Query(ctx, req)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "T1", result[0].Site.Name)
	})

	t.Run("hold blocks, release frees", func(t *testing.T) {
		arrival, _ := time.Parse(interval.DateLayout, "2026-06-15")
		departure, _ := time.Parse(interval.DateLayout, "2026-06-18")
		h, err := holdSvc.Create(ctx, hold.CreateRequest{
			CampgroundID: "cg1",
			SiteID:       "s1",
			Arrival:      arrival,
			Departure:    departure,
			CreatedBy:    "staff-1",
		})
		require.NoError(t, err)

		// Public view: the held site vanishes for an inner window.
		result, err := svc.Query(ctx, query("cg1", "2026-06-16", "2026-06-17"))
		require.NoError(t, err)
		for _, r := range result {
			assert.NotEqual(t, "s1", r.Site.ID)
		}

		// Staff view: the site appears blocked, naming the hold.
		staffReq := query("cg1", "2026-06-16", "2026-06-17")
		staffReq.StaffView = true
		staffResult, err := svc.Query(ctx, staffReq)
		require.NoError(t, err)
		var blocked *availability.SiteAvailability
		for i := range staffResult {
			if staffResult[i].Site.ID == "s1" {
				blocked = &staffResult[i]
			}
		}
		require.NotNil(t, blocked)
		assert.False(t, blocked.Available)
		require.Len(t, blocked.Blocking, 1)
		assert.Equal(t, h.ID, blocked.Blocking[0].ID)
		assert.Equal(t, claim.KindHold, blocked.Blocking[0].Kind)

		// Release and re-query the same window: available again.
		require.NoError(t, holdSvc.Release(ctx, h.ID, "staff-1"))
		result, err = svc.Query(ctx, query("cg1", "2026-06-16", "2026-06-17"))
		require.NoError(t, err)
		found := false
		for _, r := range result {
			if r.Site.ID == "s1" {
				found = true
				assert.True(t, r.Available)
			}
		}
		assert.True(t, found)
	})

	t.Run("invalid range is rejected", func(t *testing.T) {
		req := availability.Request{CampgroundID: "cg1"}
		_, err := svc.Query(ctx, req)
		assert.ErrorIs(t, err, interval.ErrInvalidRange)
	})
}
