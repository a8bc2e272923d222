package site

import (
	"context"
	"strings"

	"github.com/mossyoak/campsite-availability-backend/internal/campground"
)

type CreateRequest struct {
	CampgroundID  string
	Name          string
	SiteType      Type
	MaxRigLength  int
	HasElectric   bool
	HasWater      bool
	HasSewer      bool
	AcceptsWalkIn bool
}

type UpdateRequest struct {
	Name          *string
	SiteType      *Type
	MaxRigLength  *int
	HasElectric   *bool
	HasWater      *bool
	HasSewer      *bool
	AcceptsWalkIn *bool
	Active        *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Site, error)
	GetByID(ctx context.Context, id string) (*Site, error)
	List(ctx context.Context, filter Filter) ([]*Site, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Site, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	cgService campground.Service
}

func NewService(repo Repository, cgService campground.Service) Service {
	return &service{
		repo:      repo,
		cgService: cgService,
	}
}

func validType(t Type) bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Site, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !validType(req.SiteType) {
		return nil, ErrInvalidSiteType
	}
	if req.MaxRigLength < 0 {
		return nil, ErrInvalidRigLength
	}
	if _, err := s.cgService.GetByID(ctx, req.CampgroundID); err != nil {
		return nil, ErrInvalidCampground
	}

	st := &Site{
		CampgroundID:  req.CampgroundID,
		Name:          strings.TrimSpace(req.Name),
		SiteType:      req.SiteType,
		MaxRigLength:  req.MaxRigLength,
		HasElectric:   req.HasElectric,
		HasWater:      req.HasWater,
		HasSewer:      req.HasSewer,
		AcceptsWalkIn: req.AcceptsWalkIn,
		Active:        true,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Site, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Site, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Site, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		st.Name = strings.TrimSpace(*req.Name)
	}
	if req.SiteType != nil {
		if !validType(*req.SiteType) {
			return nil, ErrInvalidSiteType
		}
		st.SiteType = *req.SiteType
	}
	if req.MaxRigLength != nil {
		if *req.MaxRigLength < 0 {
			return nil, ErrInvalidRigLength
		}
		st.MaxRigLength = *req.MaxRigLength
	}
	if req.HasElectric != nil {
		st.HasElectric = *req.HasElectric
	}
	if req.HasWater != nil {
		st.HasWater = *req.HasWater
	}
	if req.HasSewer != nil {
		st.HasSewer = *req.HasSewer
	}
	if req.AcceptsWalkIn != nil {
		st.AcceptsWalkIn = *req.AcceptsWalkIn
	}
	if req.Active != nil {
		st.Active = *req.Active
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Deactivate hides the site from availability results without touching its
// claim history. Sites are never deleted.
func (s *service) Deactivate(ctx context.Context, id string) error {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	st.Active = false
	return s.repo.Update(ctx, st)
}
