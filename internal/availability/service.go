package availability

import (
	"context"

	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	"github.com/mossyoak/campsite-availability-backend/internal/clock"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
	"github.com/mossyoak/campsite-availability-backend/internal/rigfit"
	"github.com/mossyoak/campsite-availability-backend/internal/site"
)

// Request describes a batch availability question over one campground.
type Request struct {
	CampgroundID string
	Range        interval.DateRange
	// Profile narrows sites to those physically fitting the equipment. Nil
	// means no constraint; results are then flagged as unconfirmed fit.
	Profile *rigfit.EquipmentProfile
	// SiteTypes optionally narrows the candidate sites by class.
	SiteTypes []site.Type
	// StaffView includes blocked sites with their blocking-claim metadata;
	// the public view omits them.
	StaffView bool
}

// SiteAvailability is one row of the result. Sites incompatible with the
// equipment profile never appear: they are not blocked, they are not offered.
type SiteAvailability struct {
	Site         site.Site
	Available    bool
	FitConfirmed bool
	Blocking     []claim.Claim // staff view only
}

type Service interface {
	Query(ctx context.Context, req Request) ([]SiteAvailability, error)
}

type service struct {
	sites    site.Repository
	resolver *claim.Resolver
	clk      clock.Clock
}

func NewService(sites site.Repository, resolver *claim.Resolver, clk clock.Clock) Service {
	return &service{
		sites:    sites,
		resolver: resolver,
		clk:      clk,
	}
}

func (s *service) Query(ctx context.Context, req Request) ([]SiteAvailability, error) {
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}

	candidates, _, err := s.sites.List(ctx, site.Filter{
		CampgroundID: req.CampgroundID,
		SiteTypes:    req.SiteTypes,
		ActiveOnly:   true,
		PageSize:     1000,
	})
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	fitConfirmed := req.Profile != nil

	// The repository orders by name then id, so results are deterministic
	// for pagination and test assertions.
	result := make([]SiteAvailability, 0, len(candidates))
	for _, candidate := range candidates {
		if !rigfit.Compatible(*candidate, req.Profile) {
			continue
		}

		decision, err := s.resolver.CheckAvailability(ctx, candidate.ID, req.Range, "", now)
		if err != nil {
			return nil, err
		}

		if !decision.Available && !req.StaffView {
			continue
		}

		entry := SiteAvailability{
			Site:         *candidate,
			Available:    decision.Available,
			FitConfirmed: fitConfirmed,
		}
		if req.StaffView {
			entry.Blocking = decision.Blocking
		}
		result = append(result, entry)
	}

	return result, nil
}
