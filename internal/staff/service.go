package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mossyoak/campsite-availability-backend/internal/auth"
)

// Service defines business logic for staff accounts.
type Service interface {
	Register(ctx context.Context, email, password, displayName string, isAdmin bool) (*Member, error)
	Login(ctx context.Context, email, password string) (*Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, email, password, displayName string, isAdmin bool) (*Member, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}
	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.GetByEmail(ctx, cleanEmail); err == nil {
		return nil, ErrEmailAlreadyUsed
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var displayNamePtr *string
	if d := strings.TrimSpace(displayName); d != "" {
		displayNamePtr = &d
	}

	m := &Member{
		Email:        cleanEmail,
		PasswordHash: hash,
		DisplayName:  displayNamePtr,
		IsAdmin:      isAdmin,
		Active:       true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Member, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	m, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch staff member by email: %w", err)
	}

	if !m.Active {
		return nil, ErrInactive
	}

	if err := s.hasher.Compare(m.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update must not fail the login.
	_ = s.repo.UpdateLastLogin(ctx, m.ID, time.Now().UTC())

	return m, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
