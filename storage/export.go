package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/rmcosta/capsulelog/domain"
)

// exportVersion identifies the export document format.
const exportVersion = "1.0.0"

// ExportMetadata describes when and where an export document was produced.
type ExportMetadata struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Platform   string    `json:"platform"`
}

// ExportData is the single-document backup format: current user, profile,
// records and settings plus metadata.
type ExportData struct {
	User     *domain.User         `json:"user,omitempty"`
	Profile  *domain.UserProfile  `json:"profile,omitempty"`
	Records  []domain.DailyRecord `json:"records"`
	Settings *domain.UserSettings `json:"settings,omitempty"`
	Metadata ExportMetadata       `json:"metadata"`
}

// ExportAllData serializes everything the store holds as one JSON document.
func (s *Service) ExportAllData(ctx context.Context) (data []byte, err error) {
	defer s.metrics.observe(ctx, "export_all_data", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	export := ExportData{
		Records: s.sortedRecords(ctx),
		Metadata: ExportMetadata{
			Version:    exportVersion,
			ExportDate: time.Now(),
			Platform:   runtime.GOOS,
		},
	}

	var user domain.User
	if err := s.readJSON(ctx, keyCurrentUser, &user); err == nil {
		export.User = &user
	}
	export.Profile = s.readProfile(ctx)

	var settings domain.UserSettings
	if err := s.readJSON(ctx, keyUserSettings, &settings); err == nil {
		export.Settings = &settings
	}

	data, err = json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// importDoc keeps sections raw so an absent section can be told apart from
// an empty one; only present sections overwrite their keys.
type importDoc struct {
	Profile  json.RawMessage `json:"profile"`
	Records  json.RawMessage `json:"records"`
	Settings json.RawMessage `json:"settings"`
}

// ImportAllData restores profile, records and settings from an export
// document. Present sections overwrite their keys wholesale; absent ones
// leave the store untouched. The document's user and metadata are ignored.
func (s *Service) ImportAllData(ctx context.Context, data []byte) (err error) {
	defer s.metrics.observe(ctx, "import_all_data", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	var doc importDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrImportParse, err)
	}

	if present(doc.Profile) {
		var profile domain.UserProfile
		if err := json.Unmarshal(doc.Profile, &profile); err != nil {
			return fmt.Errorf("%w: profile: %v", ErrImportParse, err)
		}
		if err := s.writeJSON(ctx, keyUserProfile, &profile); err != nil {
			return err
		}
	}

	if present(doc.Records) {
		var records []domain.DailyRecord
		if err := json.Unmarshal(doc.Records, &records); err != nil {
			return fmt.Errorf("%w: records: %v", ErrImportParse, err)
		}
		if err := s.writeJSON(ctx, keyDailyRecords, records); err != nil {
			return err
		}
	}

	if present(doc.Settings) {
		var settings domain.UserSettings
		if err := json.Unmarshal(doc.Settings, &settings); err != nil {
			return fmt.Errorf("%w: settings: %v", ErrImportParse, err)
		}
		if err := s.writeJSON(ctx, keyUserSettings, &settings); err != nil {
			return err
		}
	}

	s.logger.Info("data import applied")
	return nil
}

// present reports whether a raw section carries a value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
