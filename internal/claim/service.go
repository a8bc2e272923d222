package claim

import (
	"context"
	"strings"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/clock"
	"github.com/mossyoak/campsite-availability-backend/internal/interval"
)

// CreateBlockRequest creates a staff-entered blackout or closure claim.
type CreateBlockRequest struct {
	CampgroundID string
	SiteID       string
	Arrival      time.Time
	Departure    time.Time
	Kind         Kind // blackout or closure only
	Note         string
	CreatedBy    string
}

// Service exposes the staff-facing operations on blackout and closure claims.
// Holds and reservations have their own services; all of them funnel writes
// through the same ledger.
type Service interface {
	CreateBlock(ctx context.Context, req CreateBlockRequest) (*Claim, error)
	Release(ctx context.Context, id, actorID string) error
	GetByID(ctx context.Context, id string) (*Claim, error)
	ListBySite(ctx context.Context, siteID string) ([]Claim, error)
}

type service struct {
	ledger        Ledger
	clk           clock.Clock
	retryAttempts int
}

func NewService(ledger Ledger, clk clock.Clock, retryAttempts int) Service {
	if retryAttempts < 1 {
		retryAttempts = DefaultRetryAttempts
	}
	return &service{
		ledger:        ledger,
		clk:           clk,
		retryAttempts: retryAttempts,
	}
}

func (s *service) CreateBlock(ctx context.Context, req CreateBlockRequest) (*Claim, error) {
	if req.Kind != KindBlackout && req.Kind != KindClosure {
		return nil, ErrInvalidKind
	}

	rng, err := interval.New(req.Arrival, req.Departure)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	c := Claim{
		CampgroundID: req.CampgroundID,
		SiteID:       req.SiteID,
		Range:        rng,
		Kind:         req.Kind,
		Status:       StatusActive,
		CreatedBy:    optional(req.CreatedBy),
		Note:         optional(req.Note),
	}

	var created Claim
	err = WithRetry(ctx, s.retryAttempts, func() error {
		var insertErr error
		created, insertErr = s.ledger.InsertClaim(ctx, c, InsertOptions{Now: now})
		return insertErr
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *service) Release(ctx context.Context, id, actorID string) error {
	c, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Kind != KindBlackout && c.Kind != KindClosure {
		return ErrNotFound
	}
	return s.ledger.UpdateStatus(ctx, id, StatusCancelled, s.clk.Now())
}

func (s *service) GetByID(ctx context.Context, id string) (*Claim, error) {
	c, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *service) ListBySite(ctx context.Context, siteID string) ([]Claim, error) {
	return s.ledger.ListBySite(ctx, siteID)
}

// optional maps an empty string to a NULL-able pointer.
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
