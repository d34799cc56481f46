package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rmcosta/capsulelog/domain"
	"github.com/rmcosta/capsulelog/kvstore"
)

// defaultSettings returns the settings a fresh installation starts with.
func defaultSettings(now time.Time) *domain.UserSettings {
	return &domain.UserSettings{
		Notifications: true,
		ReminderTime:  "09:00",
		DailyGoal:     1,
		WeeklyGoal:    7,
		Theme:         domain.ThemeLight,
		Language:      domain.LanguagePT,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// GetUserSettings returns the settings, creating and persisting the defaults
// when the key is absent. It never fails: an unreadable key yields the
// defaults without persisting them.
func (s *Service) GetUserSettings(ctx context.Context) *domain.UserSettings {
	defer s.metrics.observe(ctx, "get_user_settings", time.Now(), nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readSettingsOrDefault(ctx)
}

// UpdateUserSettings merges a partial change into the settings, restamps
// UpdatedAt and returns the stored result.
func (s *Service) UpdateUserSettings(ctx context.Context, update domain.SettingsUpdate) (settings *domain.UserSettings, err error) {
	defer s.metrics.observe(ctx, "update_user_settings", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	settings = s.readSettingsOrDefault(ctx)

	if update.Notifications != nil {
		settings.Notifications = *update.Notifications
	}
	if update.ReminderTime != nil {
		settings.ReminderTime = *update.ReminderTime
	}
	if update.DailyGoal != nil {
		settings.DailyGoal = *update.DailyGoal
	}
	if update.WeeklyGoal != nil {
		settings.WeeklyGoal = *update.WeeklyGoal
	}
	if update.Theme != nil {
		settings.Theme = *update.Theme
	}
	if update.Language != nil {
		settings.Language = *update.Language
	}
	settings.UpdatedAt = time.Now()

	if err := s.writeJSON(ctx, keyUserSettings, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// readSettingsOrDefault loads the settings, seeding the defaults on first
// read. Callers hold s.mu.
func (s *Service) readSettingsOrDefault(ctx context.Context) *domain.UserSettings {
	var settings domain.UserSettings
	err := s.readJSON(ctx, keyUserSettings, &settings)
	if err == nil {
		return &settings
	}

	defaults := defaultSettings(time.Now())
	if err == kvstore.ErrNotFound {
		if werr := s.writeJSON(ctx, keyUserSettings, defaults); werr != nil {
			s.logger.Warn("failed to persist default settings", zap.Error(werr))
		}
	} else {
		s.logReadMiss("user settings", err)
	}
	return defaults
}
