package storage

import (
	"context"
	"fmt"
	"time"
)

// StorageStats is a per-key byte breakdown of the store's contents.
type StorageStats struct {
	TotalSize int64            `json:"totalSize"`
	ItemCount int              `json:"itemCount"`
	Breakdown map[string]int64 `json:"breakdown"`
}

// ClearAllData removes every known key, returning the store to a fresh
// installation.
func (s *Service) ClearAllData(ctx context.Context) (err error) {
	defer s.metrics.observe(ctx, "clear_all_data", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, len(knownKeys))
	for i, name := range knownKeys {
		keys[i] = s.key(name)
	}
	if err := s.store.RemoveMany(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}

	s.logger.Info("all data cleared")
	return nil
}

// GetStorageStats measures the stored byte size of every known key. A key
// that is missing or unreadable contributes zero bytes and does not count as
// populated; the operation itself never fails.
func (s *Service) GetStorageStats(ctx context.Context) *StorageStats {
	defer s.metrics.observe(ctx, "get_storage_stats", time.Now(), nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &StorageStats{Breakdown: make(map[string]int64, len(knownKeys))}
	for _, name := range knownKeys {
		value, err := s.store.Get(ctx, s.key(name))
		if err != nil {
			stats.Breakdown[name] = 0
			continue
		}
		size := int64(len(value))
		stats.Breakdown[name] = size
		stats.TotalSize += size
		stats.ItemCount++
	}
	return stats
}
