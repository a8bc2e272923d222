package reservation

import (
	"context"
	"net/http"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	"github.com/mossyoak/campsite-availability-backend/internal/clock"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
	"github.com/mossyoak/campsite-availability-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "reservation not found")
	ErrHoldNotFound = apperror.New(http.StatusNotFound, "hold not found")
	ErrHoldMismatch = apperror.New(http.StatusBadRequest, "hold does not match the requested site and dates")
)

// CreateRequest confirms occupancy of a site. When HoldID is set, the hold is
// consumed (captured) in the same transaction that writes the reservation.
type CreateRequest struct {
	CampgroundID string
	SiteID       string
	Arrival      time.Time
	Departure    time.Time
	HoldID       string
	Note         string
	CreatedBy    string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*claim.Claim, error)
	Cancel(ctx context.Context, id, actorID string) error
	GetByID(ctx context.Context, id string) (*claim.Claim, error)
}

type service struct {
	ledger        claim.Ledger
	clk           clock.Clock
	retryAttempts int
}

func NewService(ledger claim.Ledger, clk clock.Clock, retryAttempts int) Service {
	if retryAttempts < 1 {
		retryAttempts = claim.DefaultRetryAttempts
	}
	return &service{
		ledger:        ledger,
		clk:           clk,
		retryAttempts: retryAttempts,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*claim.Claim, error) {
	rng, err := interval.New(req.Arrival, req.Departure)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	opts := claim.InsertOptions{Now: now}

	if req.HoldID != "" {
		h, err := s.ledger.GetByID(ctx, req.HoldID)
		if err != nil {
			if err == claim.ErrNotFound {
				return nil, ErrHoldNotFound
			}
			return nil, err
		}
		if h.Kind != claim.KindHold {
			return nil, ErrHoldNotFound
		}
		if h.SiteID != req.SiteID {
			return nil, ErrHoldMismatch
		}
		// The hold's own claim must not count against the reservation that
		// supersedes it; the capture happens inside the insert transaction,
		// so a hold that just went terminal loses there, atomically.
		opts.ExcludeClaimID = req.HoldID
		opts.CaptureHoldID = req.HoldID
	}

	c := claim.Claim{
		CampgroundID: req.CampgroundID,
		SiteID:       req.SiteID,
		Range:        rng,
		Kind:         claim.KindReservation,
		Status:       claim.StatusActive,
		CreatedBy:    optional(req.CreatedBy),
		Note:         optional(req.Note),
	}

	var created claim.Claim
	err = claim.WithRetry(ctx, s.retryAttempts, func() error {
		var insertErr error
		created, insertErr = s.ledger.InsertClaim(ctx, c, opts)
		return insertErr
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Cancel transitions an active reservation to cancelled; the claim then stops
// participating in conflict checks exactly like a released hold.
func (s *service) Cancel(ctx context.Context, id, actorID string) error {
	c, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		if err == claim.ErrNotFound {
			return ErrNotFound
		}
		return err
	}
	if c.Kind != claim.KindReservation {
		return ErrNotFound
	}
	return s.ledger.UpdateStatus(ctx, id, claim.StatusCancelled, s.clk.Now())
}

func (s *service) GetByID(ctx context.Context, id string) (*claim.Claim, error) {
	c, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Kind != claim.KindReservation {
		return nil, ErrNotFound
	}
	return &c, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
