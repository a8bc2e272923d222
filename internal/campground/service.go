package campground

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name     string
	Timezone string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Campground, error)
	GetByID(ctx context.Context, id string) (*Campground, error)
	List(ctx context.Context, filter Filter) ([]*Campground, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Campground, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}

	cg := &Campground{
		Name:     name,
		Timezone: tz,
	}
	if err := s.repo.Create(ctx, cg); err != nil {
		return nil, err
	}
	return cg, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Campground, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Campground, int, error) {
	return s.repo.List(ctx, filter)
}
