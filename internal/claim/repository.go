package claim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mossyoak/campsite-availability-backend/internal/interval"
)

// Ledger is the writer-of-record for site occupancy. The check-and-insert is a
// single repository method so its atomicity cannot be broken by callers.
type Ledger interface {
	// ActiveClaims returns every blocking claim on the site whose range
	// intersects the window, ordered by arrival date then id.
	ActiveClaims(ctx context.Context, siteID string, window interval.DateRange, now time.Time) ([]Claim, error)

	// InsertClaim re-verifies that no blocking claim overlaps the requested
	// range and inserts, all within one transaction serialized per site.
	// Returns *ConflictError naming the blockers, ErrLockTimeout when the
	// serialization point could not be acquired in time, or ErrSiteNotFound.
	InsertClaim(ctx context.Context, c Claim, opts InsertOptions) (Claim, error)

	GetByID(ctx context.Context, id string) (Claim, error)

	// UpdateStatus transitions active -> to. A claim already in a terminal
	// status is never overwritten: the losing transition gets
	// ErrAlreadyTerminal.
	UpdateStatus(ctx context.Context, id string, to Status, now time.Time) error

	// ExpireStale transitions every active hold with expiry <= now to
	// expired and returns the count. Safe to run concurrently and repeatedly.
	ExpireStale(ctx context.Context, now time.Time) (int, error)

	// ListActiveHolds returns holds that are active and unexpired at now.
	ListActiveHolds(ctx context.Context, campgroundID string, now time.Time) ([]Claim, error)

	// ListBySite returns the full claim history for a site, newest first.
	ListBySite(ctx context.Context, siteID string) ([]Claim, error)
}

type pgxLedger struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

const defaultLockTimeout = 2 * time.Second

// NewPgxLedger creates the postgres-backed occupancy ledger. lockTimeout
// bounds how long InsertClaim may wait on the per-site row lock; zero keeps
// the default.
func NewPgxLedger(pool *pgxpool.Pool, lockTimeout time.Duration) Ledger {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &pgxLedger{pool: pool, lockTimeout: lockTimeout}
}

const claimColumns = "id, campground_id, site_id, arrival_date, departure_date, kind, status, created_by, note, expires_at, created_at, updated_at"

func scanClaim(row pgx.Row) (Claim, error) {
	var c Claim
	err := row.Scan(
		&c.ID, &c.CampgroundID, &c.SiteID, &c.Range.Arrival, &c.Range.Departure,
		&c.Kind, &c.Status, &c.CreatedBy, &c.Note, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func collectClaims(rows pgx.Rows) ([]Claim, error) {
	defer rows.Close()
	var result []Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim failed: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// blockingPredicate is the SQL mirror of Claim.IsBlockingAt: active status,
// and for holds an expiry still in the future.
func blockingPredicate(now time.Time) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Eq{"status": StatusActive},
		squirrel.Or{
			squirrel.NotEq{"kind": KindHold},
			squirrel.Gt{"expires_at": now},
		},
	}
}

func (r *pgxLedger) ActiveClaims(ctx context.Context, siteID string, window interval.DateRange, now time.Time) ([]Claim, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(claimColumns).
		From("public.claims").
		Where(squirrel.Eq{"site_id": siteID}).
		Where(blockingPredicate(now)).
		Where(squirrel.Lt{"arrival_date": window.Departure}).
		Where(squirrel.Gt{"departure_date": window.Arrival}).
		OrderBy("arrival_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active claims query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("active claims failed: %w", err)
	}
	return collectClaims(rows)
}

func (r *pgxLedger) InsertClaim(ctx context.Context, c Claim, opts InsertOptions) (Claim, error) {
	var created Claim

	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		tx := txFromContext(txCtx)

		// Bounded wait on the serialization point; 55P03 surfaces as a
		// retryable ErrLockTimeout rather than a genuine conflict.
		timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(txCtx, timeout); err != nil {
			return fmt.Errorf("set lock timeout failed: %w", err)
		}

		// Per-site row lock: two concurrent check-and-inserts for the same
		// site cannot both pass their check before either commits.
		var lockedID string
		err := tx.QueryRow(txCtx, `SELECT id FROM public.sites WHERE id = $1 FOR UPDATE`, c.SiteID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSiteNotFound
			}
			if isLockTimeout(err) {
				return ErrLockTimeout
			}
			if isInvalidUUID(err) {
				return ErrSiteNotFound
			}
			return fmt.Errorf("lock site failed: %w", err)
		}

		blocking, err := r.blockingInTx(txCtx, tx, c.SiteID, c.Range, opts)
		if err != nil {
			return err
		}
		if len(blocking) > 0 {
			return &ConflictError{Blocking: blocking}
		}

		if opts.CaptureHoldID != "" {
			if err := r.transitionInTx(txCtx, tx, opts.CaptureHoldID, StatusCaptured, opts.Now); err != nil {
				return err
			}
		}

		const insert = `
			INSERT INTO public.claims
				(campground_id, site_id, arrival_date, departure_date, kind, status, created_by, note, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING ` + claimColumns
		created, err = scanClaim(tx.QueryRow(txCtx, insert,
			c.CampgroundID, c.SiteID, c.Range.Arrival, c.Range.Departure,
			c.Kind, c.Status, c.CreatedBy, c.Note, c.ExpiresAt,
		))
		if err != nil {
			if isInvalidUUID(err) {
				return ErrSiteNotFound
			}
			return fmt.Errorf("insert claim failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return Claim{}, err
	}
	return created, nil
}

func (r *pgxLedger) blockingInTx(ctx context.Context, tx pgx.Tx, siteID string, rng interval.DateRange, opts InsertOptions) ([]Claim, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(claimColumns).
		From("public.claims").
		Where(squirrel.Eq{"site_id": siteID}).
		Where(blockingPredicate(opts.Now)).
		Where(squirrel.Lt{"arrival_date": rng.Departure}).
		Where(squirrel.Gt{"departure_date": rng.Arrival}).
		OrderBy("arrival_date", "id")
	if opts.ExcludeClaimID != "" {
		builder = builder.Where(squirrel.NotEq{"id": opts.ExcludeClaimID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build blocking claims query failed: %w", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("blocking claims failed: %w", err)
	}
	return collectClaims(rows)
}

func (r *pgxLedger) GetByID(ctx context.Context, id string) (Claim, error) {
	const query = `SELECT ` + claimColumns + ` FROM public.claims WHERE id = $1`
	c, err := scanClaim(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return Claim{}, ErrNotFound
		}
		return Claim{}, fmt.Errorf("get claim failed: %w", err)
	}
	return c, nil
}

func (r *pgxLedger) UpdateStatus(ctx context.Context, id string, to Status, now time.Time) error {
	return withTx(ctx, r.pool, func(txCtx context.Context) error {
		return r.transitionInTx(txCtx, txFromContext(txCtx), id, to, now)
	})
}

// transitionInTx moves a claim out of active. Releases and expiries are
// status updates, never deletions, so the audit history survives.
func (r *pgxLedger) transitionInTx(ctx context.Context, tx pgx.Tx, id string, to Status, now time.Time) error {
	const update = `
		UPDATE public.claims
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	ct, err := tx.Exec(ctx, update, to, now, id, StatusActive)
	if err != nil {
		if isInvalidUUID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update claim status failed: %w", err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	// Nothing updated: either the claim is gone or a racing transition won.
	var current Status
	err = tx.QueryRow(ctx, `SELECT status FROM public.claims WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("check claim status failed: %w", err)
	}
	if current.Terminal() {
		return ErrAlreadyTerminal
	}
	return fmt.Errorf("claim %s stuck in status %s", id, current)
}

func (r *pgxLedger) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	const stmt = `
		UPDATE public.claims
		SET status = $1, updated_at = $2
		WHERE kind = $3 AND status = $4 AND expires_at <= $2
	`
	ct, err := r.pool.Exec(ctx, stmt, StatusExpired, now, KindHold, StatusActive)
	if err != nil {
		return 0, fmt.Errorf("expire stale holds failed: %w", err)
	}
	return int(ct.RowsAffected()), nil
}

func (r *pgxLedger) ListActiveHolds(ctx context.Context, campgroundID string, now time.Time) ([]Claim, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(claimColumns).
		From("public.claims").
		Where(squirrel.Eq{"campground_id": campgroundID}).
		Where(squirrel.Eq{"kind": KindHold}).
		Where(squirrel.Eq{"status": StatusActive}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("arrival_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active holds query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active holds failed: %w", err)
	}
	return collectClaims(rows)
}

func (r *pgxLedger) ListBySite(ctx context.Context, siteID string) ([]Claim, error) {
	const query = `
		SELECT ` + claimColumns + `
		FROM public.claims
		WHERE site_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := r.pool.Query(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("list claims by site failed: %w", err)
	}
	return collectClaims(rows)
}

func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.LockNotAvailable
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
