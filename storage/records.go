package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rmcosta/capsulelog/domain"
	"github.com/rmcosta/capsulelog/kvstore"
)

// CreateDailyRecord appends a new record and returns its id. It does not
// check for an existing record on the same date; callers that want one
// record per day look it up with GetDailyRecordByDate first.
func (s *Service) CreateDailyRecord(ctx context.Context, data domain.NewDailyRecord) (id string, err error) {
	defer s.metrics.observe(ctx, "create_daily_record", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read daily records: %w", err)
	}

	now := time.Now()
	record := domain.DailyRecord{
		ID:        uuid.New().String(),
		Date:      data.Date,
		Capsules:  data.Capsules,
		Time:      data.Time,
		Notes:     data.Notes,
		Completed: data.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	records = append(records, record)
	if err := s.writeJSON(ctx, keyDailyRecords, records); err != nil {
		return "", err
	}

	s.logger.Debug("daily record created",
		zap.String("record_id", record.ID),
		zap.String("date", record.Date.String()),
	)
	return record.ID, nil
}

// GetDailyRecords returns all records sorted by date descending, most recent
// first. Missing or malformed storage yields an empty list, never an error.
func (s *Service) GetDailyRecords(ctx context.Context) []domain.DailyRecord {
	defer s.metrics.observe(ctx, "get_daily_records", time.Now(), nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedRecords(ctx)
}

// GetDailyRecordByDate returns the record for an exact calendar day, or nil.
func (s *Service) GetDailyRecordByDate(ctx context.Context, date domain.Date) *domain.DailyRecord {
	defer s.metrics.observe(ctx, "get_daily_record_by_date", time.Now(), nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.sortedRecords(ctx) {
		if record.Date == date {
			return &record
		}
	}
	return nil
}

// UpdateDailyRecord merges a partial change into the record with the given
// id and restamps UpdatedAt.
func (s *Service) UpdateDailyRecord(ctx context.Context, id string, update domain.RecordUpdate) (err error) {
	defer s.metrics.observe(ctx, "update_daily_record", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to read daily records: %w", err)
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}

		if update.Date != nil {
			records[i].Date = *update.Date
		}
		if update.Capsules != nil {
			records[i].Capsules = *update.Capsules
		}
		if update.Time != nil {
			records[i].Time = *update.Time
		}
		if update.Notes != nil {
			records[i].Notes = update.Notes
		}
		if update.Completed != nil {
			records[i].Completed = *update.Completed
		}
		records[i].UpdatedAt = time.Now()

		return s.writeJSON(ctx, keyDailyRecords, records)
	}

	return fmt.Errorf("record %s: %w", id, ErrRecordNotFound)
}

// DeleteDailyRecord removes a record by id. A missing id is a silent no-op.
func (s *Service) DeleteDailyRecord(ctx context.Context, id string) (err error) {
	defer s.metrics.observe(ctx, "delete_daily_record", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to read daily records: %w", err)
	}

	kept := records[:0]
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}

	if len(kept) == len(records) {
		return nil
	}
	return s.writeJSON(ctx, keyDailyRecords, kept)
}

// ClearAllDailyRecords replaces the record list with an empty one.
func (s *Service) ClearAllDailyRecords(ctx context.Context) (err error) {
	defer s.metrics.observe(ctx, "clear_all_daily_records", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeJSON(ctx, keyDailyRecords, []domain.DailyRecord{})
}

// readRecords loads the raw record list; a missing key is an empty list.
// Callers hold s.mu.
func (s *Service) readRecords(ctx context.Context) ([]domain.DailyRecord, error) {
	var records []domain.DailyRecord
	if err := s.readJSON(ctx, keyDailyRecords, &records); err != nil {
		if err == kvstore.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

// sortedRecords is the degrading read path: any failure yields an empty
// list. Records sort by date descending, with CreatedAt descending as a
// deterministic tiebreak for duplicate dates. Callers hold s.mu.
func (s *Service) sortedRecords(ctx context.Context) []domain.DailyRecord {
	records, err := s.readRecords(ctx)
	if err != nil {
		s.logReadMiss("daily records", err)
		return []domain.DailyRecord{}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if c := records[i].Date.Compare(records[j].Date); c != 0 {
			return c > 0
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records
}
