package campground

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, cg *Campground) error
	GetByID(ctx context.Context, id string) (*Campground, error)
	List(ctx context.Context, filter Filter) ([]*Campground, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, cg *Campground) error {
	const query = `
		INSERT INTO public.campgrounds (name, timezone)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, cg.Name, cg.Timezone).Scan(&cg.ID, &cg.CreatedAt)
	if err != nil {
		return fmt.Errorf("create campground failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Campground, error) {
	const query = `SELECT id, name, timezone, created_at FROM public.campgrounds WHERE id = $1`
	var cg Campground
	err := r.pool.QueryRow(ctx, query, id).Scan(&cg.ID, &cg.Name, &cg.Timezone, &cg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get campground failed: %w", err)
	}
	return &cg, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Campground, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	const query = `
		SELECT id, name, timezone, created_at, count(*) OVER() as total_count
		FROM public.campgrounds
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list campgrounds failed: %w", err)
	}
	defer rows.Close()

	var result []*Campground
	var total int
	for rows.Next() {
		var cg Campground
		if err := rows.Scan(&cg.ID, &cg.Name, &cg.Timezone, &cg.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan campground failed: %w", err)
		}
		result = append(result, &cg)
	}

	return result, total, nil
}
