package hold

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
	ErrNotFound   = apperror.New(http.StatusNotFound, "hold not found")
	ErrInvalidTTL = apperror.New(http.StatusBadRequest, "hold_minutes must be positive")
)

const defaultTTL = 30 * time.Minute

// CreateRequest describes a staff request to provisionally secure a site.
type CreateRequest struct {
	CampgroundID string
	SiteID       string
	Arrival      time.Time
	Departure    time.Time
	TTLMinutes   int // 0 means the configured default
	Note         string
	CreatedBy    string
}

// Service owns the hold lifecycle: active -> released | expired | captured,
// all terminal. Capture happens inside reservation creation; everything else
// lives here.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*claim.Claim, error)
	Release(ctx context.Context, holdID, actorID string) error
	ListActive(ctx context.Context, campgroundID string) ([]claim.Claim, error)
	ExpireStale(ctx context.Context) (int, error)
}

type service struct {
	ledger        claim.Ledger
	clk           clock.Clock
	ttl           time.Duration
	retryAttempts int
}

type Option func(*service)

// WithDefaultTTL overrides the default time-to-live applied when a create
// request does not specify hold_minutes.
func WithDefaultTTL(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithRetryAttempts bounds the internal retries on lock timeouts.
func WithRetryAttempts(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.retryAttempts = n
		}
	}
}

func NewService(ledger claim.Ledger, clk clock.Clock, opts ...Option) Service {
	s := &service{
		ledger:        ledger,
		clk:           clk,
		ttl:           defaultTTL,
		retryAttempts: claim.DefaultRetryAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*claim.Claim, error) {
	rng, err := interval.New(req.Arrival, req.Departure)
	if err != nil {
		return nil, err
	}
	if req.TTLMinutes < 0 {
		return nil, ErrInvalidTTL
	}

	ttl := s.ttl
	if req.TTLMinutes > 0 {
		ttl = time.Duration(req.TTLMinutes) * time.Minute
	}

	now := s.clk.Now()
	expiry := now.Add(ttl)

	c := claim.Claim{
		CampgroundID: req.CampgroundID,
		SiteID:       req.SiteID,
		Range:        rng,
		Kind:         claim.KindHold,
		Status:       claim.StatusActive,
		CreatedBy:    stringPtr(req.CreatedBy),
		Note:         stringPtr(req.Note),
		ExpiresAt:    &expiry,
	}

	var created claim.Claim
	err = claim.WithRetry(ctx, s.retryAttempts, func() error {
		var insertErr error
		created, insertErr = s.ledger.InsertClaim(ctx, c, claim.InsertOptions{Now: now})
		return insertErr
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Release transitions an active hold to released. Releasing a hold that is
// already terminal is an explicit error, never a silent no-op, so callers can
// detect stale state.
func (s *service) Release(ctx context.Context, holdID, actorID string) error {
	c, err := s.ledger.GetByID(ctx, holdID)
	if err != nil {
		if err == claim.ErrNotFound {
			return ErrNotFound
		}
		return err
	}
	if c.Kind != claim.KindHold {
		return ErrNotFound
	}
	return s.ledger.UpdateStatus(ctx, holdID, claim.StatusReleased, s.clk.Now())
}

// ListActive returns holds that are active and unexpired at query time. A
// hold past its expiry but not yet swept is treated as already expired here,
// regardless of its persisted status.
func (s *service) ListActive(ctx context.Context, campgroundID string) ([]claim.Claim, error) {
	return s.ledger.ListActiveHolds(ctx, campgroundID, s.clk.Now())
}

// ExpireStale sweeps every active hold past its expiry into the expired
// status. Invoked by an external scheduler; re-running against an
// already-swept set expires zero additional holds.
func (s *service) ExpireStale(ctx context.Context) (int, error) {
	return s.ledger.ExpireStale(ctx, s.clk.Now())
}

func stringPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
