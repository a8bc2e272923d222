package site

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Site) error
	GetByID(ctx context.Context, id string) (*Site, error)
	List(ctx context.Context, filter Filter) ([]*Site, int, error)
	Update(ctx context.Context, s *Site) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const siteColumns = "id, campground_id, name, site_type, max_rig_length, has_electric, has_water, has_sewer, accepts_walk_in, active, created_at"

func scanSite(row pgx.Row) (*Site, error) {
	var s Site
	err := row.Scan(
		&s.ID, &s.CampgroundID, &s.Name, &s.SiteType, &s.MaxRigLength,
		&s.HasElectric, &s.HasWater, &s.HasSewer, &s.AcceptsWalkIn, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Site) error {
	const query = `
		INSERT INTO public.sites
			(campground_id, name, site_type, max_rig_length, has_electric, has_water, has_sewer, accepts_walk_in, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		s.CampgroundID, s.Name, s.SiteType, s.MaxRigLength,
		s.HasElectric, s.HasWater, s.HasSewer, s.AcceptsWalkIn, s.Active,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create site failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Site, error) {
	const query = `SELECT ` + siteColumns + ` FROM public.sites WHERE id = $1`
	s, err := scanSite(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get site failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Site, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(siteColumns + ", count(*) OVER() as total_count").
		From("public.sites")

	if filter.CampgroundID != "" {
		query = query.Where(squirrel.Eq{"campground_id": filter.CampgroundID})
	}
	if len(filter.SiteTypes) > 0 {
		query = query.Where(squirrel.Eq{"site_type": filter.SiteTypes})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"active": true})
	}

	// Ordering must be deterministic for stable pagination.
	query = query.OrderBy("name", "id")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sites query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sites failed: %w", err)
	}
	defer rows.Close()

	var sites []*Site
	var total int
	for rows.Next() {
		var s Site
		if err := rows.Scan(
			&s.ID, &s.CampgroundID, &s.Name, &s.SiteType, &s.MaxRigLength,
			&s.HasElectric, &s.HasWater, &s.HasSewer, &s.AcceptsWalkIn, &s.Active, &s.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan site failed: %w", err)
		}
		sites = append(sites, &s)
	}

	return sites, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Site) error {
	const query = `
		UPDATE public.sites
		SET name = $1, site_type = $2, max_rig_length = $3, has_electric = $4,
		    has_water = $5, has_sewer = $6, accepts_walk_in = $7, active = $8
		WHERE id = $9
	`
	ct, err := r.pool.Exec(ctx, query,
		s.Name, s.SiteType, s.MaxRigLength, s.HasElectric,
		s.HasWater, s.HasSewer, s.AcceptsWalkIn, s.Active, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update site failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
