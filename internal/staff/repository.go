package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const memberColumns = "id, email, password_hash, display_name, is_admin, active, created_at, last_login_at"

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(
		&m.ID, &m.Email, &m.PasswordHash, &m.DisplayName,
		&m.IsAdmin, &m.Active, &m.CreatedAt, &m.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *pgxRepository) Create(ctx context.Context, m *Member) error {
	const query = `
		INSERT INTO public.staff (email, password_hash, display_name, is_admin, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		m.Email, m.PasswordHash, m.DisplayName, m.IsAdmin, m.Active,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create staff member failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM public.staff WHERE id = $1`
	m, err := scanMember(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get staff member failed: %w", err)
	}
	return m, nil
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM public.staff WHERE email = $1`
	m, err := scanMember(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get staff member by email failed: %w", err)
	}
	return m, nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE public.staff SET last_login_at = $1 WHERE id = $2`
	if _, err := r.pool.Exec(ctx, query, at, id); err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	return nil
}
