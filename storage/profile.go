package storage

import (
	"context"
	"time"

	"github.com/rmcosta/capsulelog/domain"
)

// GetUserProfile returns the installation's profile, or nil when it is
// absent or unreadable.
func (s *Service) GetUserProfile(ctx context.Context) *domain.UserProfile {
	defer s.metrics.observe(ctx, "get_user_profile", time.Now(), nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readProfile(ctx)
}

// UpdateUserProfile merges a partial change into the profile, restamps
// UpdatedAt and returns the stored result. An absent profile is created.
func (s *Service) UpdateUserProfile(ctx context.Context, update domain.ProfileUpdate) (profile *domain.UserProfile, err error) {
	defer s.metrics.observe(ctx, "update_user_profile", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	profile = s.readProfile(ctx)
	if profile == nil {
		profile = &domain.UserProfile{CreatedAt: now}
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.DateOfBirth != nil {
		profile.DateOfBirth = update.DateOfBirth
	}
	if update.Gender != nil {
		profile.Gender = update.Gender
	}
	if update.Email != nil {
		profile.Email = *update.Email
	}
	if update.Phone != nil {
		profile.Phone = update.Phone
	}
	if update.ProfileImageURL != nil {
		profile.ProfileImageURL = update.ProfileImageURL
	}
	if update.TreatmentStartDate != nil {
		profile.TreatmentStartDate = update.TreatmentStartDate
	}
	if update.HasSeenTutorial != nil {
		profile.HasSeenTutorial = update.HasSeenTutorial
	}
	profile.UpdatedAt = now

	if err := s.writeJSON(ctx, keyUserProfile, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// readProfile is the degrading read path for the profile. Callers hold s.mu.
func (s *Service) readProfile(ctx context.Context) *domain.UserProfile {
	var profile domain.UserProfile
	if err := s.readJSON(ctx, keyUserProfile, &profile); err != nil {
		s.logReadMiss("user profile", err)
		return nil
	}
	return &profile
}
