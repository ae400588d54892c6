// Package profile provides profile CRUD operations backed by persistence.
// It validates and assembles domain/profile.Profile values; the pure
// invariant logic itself lives in internal/domain/profile.
package profile

import (
	"context"
	"time"

	domainprofile "github.com/waynenilsen/safeworkout/internal/domain/profile"
	apperrors "github.com/waynenilsen/safeworkout/internal/errors"
)

// Repository defines the persistence operations the service needs.
type Repository interface {
	GetByID(ctx context.Context, userID string) (*domainprofile.Profile, error)
	Save(ctx context.Context, p *domainprofile.Profile) error
	Delete(ctx context.Context, userID string) error
}

// Service provides profile create/read/update operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GetProfile retrieves a user's profile. Returns a NotFound DomainError if
// no profile is on file for that user.
func (s *Service) GetProfile(ctx context.Context, userID string) (*domainprofile.Profile, error) {
	if userID == "" {
		return nil, apperrors.NewBadRequest("user ID is required")
	}
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternal("failed to retrieve profile", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFound("profile", userID)
	}
	return p, nil
}

// CreateProfile validates and persists a new profile. Returns a Conflict
// error if a profile already exists for the given user ID.
func (s *Service) CreateProfile(ctx context.Context, p *domainprofile.Profile) (*domainprofile.Profile, error) {
	if p.UserID == "" {
		return nil, apperrors.NewBadRequest("user ID is required")
	}
	existing, err := s.repo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, apperrors.NewInternal("failed to check for existing profile", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflict("profile already exists for user: " + p.UserID)
	}
	p.UpdatedAt = s.now()
	if err := p.Validate(); err != nil {
		return nil, apperrors.NewValidationMsg(err.Error())
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, apperrors.NewInternal("failed to save profile", err)
	}
	return p, nil
}

// UpdateProfile replaces a user's profile wholesale. The caller (the HTTP
// handler decoding a PUT body) is expected to have already merged in the
// existing UserID; this validates the replacement before persisting it.
func (s *Service) UpdateProfile(ctx context.Context, userID string, p *domainprofile.Profile) (*domainprofile.Profile, error) {
	if userID == "" {
		return nil, apperrors.NewBadRequest("user ID is required")
	}
	existing, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternal("failed to check for existing profile", err)
	}
	if existing == nil {
		return nil, apperrors.NewNotFound("profile", userID)
	}

	p.UserID = userID
	p.UpdatedAt = s.now()
	if err := p.Validate(); err != nil {
		return nil, apperrors.NewValidationMsg(err.Error())
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, apperrors.NewInternal("failed to save profile", err)
	}
	return p, nil
}

// DeleteProfile removes a user's profile.
func (s *Service) DeleteProfile(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.NewBadRequest("user ID is required")
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return apperrors.NewInternal("failed to delete profile", err)
	}
	return nil
}
