package storage

import (
	"context"
	"fmt"
	"time"
)

// The tutorial state is dual-written: a dedicated flag key and the profile's
// hasSeenTutorial field. Either source being true counts as seen, so the
// flag survives a profile rewrite and vice versa.

// MarkTutorialAsSeen records that the tutorial was completed.
func (s *Service) MarkTutorialAsSeen(ctx context.Context) (err error) {
	defer s.metrics.observe(ctx, "mark_tutorial_as_seen", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, s.key(keyTutorialSeen), "true"); err != nil {
		return fmt.Errorf("failed to write key %s: %w", keyTutorialSeen, err)
	}
	return s.writeTutorialProfileFlag(ctx, true)
}

// HasUserSeenTutorial reports whether either tutorial source says seen.
// Errors degrade to false.
func (s *Service) HasUserSeenTutorial(ctx context.Context) bool {
	defer s.metrics.observe(ctx, "has_user_seen_tutorial", time.Now(), nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	if flag, err := s.store.Get(ctx, s.key(keyTutorialSeen)); err == nil && flag == "true" {
		return true
	}

	if profile := s.readProfile(ctx); profile != nil && profile.HasSeenTutorial != nil {
		return *profile.HasSeenTutorial
	}
	return false
}

// ResetTutorialStatus clears both tutorial sources.
func (s *Service) ResetTutorialStatus(ctx context.Context) (err error) {
	defer s.metrics.observe(ctx, "reset_tutorial_status", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, s.key(keyTutorialSeen)); err != nil {
		return fmt.Errorf("failed to remove key %s: %w", keyTutorialSeen, err)
	}
	return s.writeTutorialProfileFlag(ctx, false)
}

// writeTutorialProfileFlag mirrors the tutorial state into the profile when
// one exists. Callers hold s.mu.
func (s *Service) writeTutorialProfileFlag(ctx context.Context, seen bool) error {
	profile := s.readProfile(ctx)
	if profile == nil {
		return nil
	}
	profile.HasSeenTutorial = &seen
	profile.UpdatedAt = time.Now()
	return s.writeJSON(ctx, keyUserProfile, profile)
}
