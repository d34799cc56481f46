package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmcosta/capsulelog/domain"
)

func TestGetStorageStats(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	empty := svc.GetStorageStats(ctx)
	assert.Zero(t, empty.TotalSize)
	assert.Zero(t, empty.ItemCount)
	assert.Len(t, empty.Breakdown, len(knownKeys), "every known key appears in the breakdown")

	_, err := svc.RegisterUser(ctx, "ana@example.com", "pw", "Ana")
	require.NoError(t, err)
	_, err = svc.CreateDailyRecord(ctx, domain.NewDailyRecord{Date: date(t, "2024-03-01")})
	require.NoError(t, err)

	stats := svc.GetStorageStats(ctx)
	assert.Positive(t, stats.TotalSize)
	// users, current user, auth token, profile, settings, records
	assert.Equal(t, 6, stats.ItemCount)

	raw, err := store.Get(ctx, svc.key(keyDailyRecords))
	require.NoError(t, err)
	assert.Equal(t, int64(len(raw)), stats.Breakdown[keyDailyRecords])
	assert.Zero(t, stats.Breakdown[keyTutorialSeen])

	var total int64
	for _, size := range stats.Breakdown {
		total += size
	}
	assert.Equal(t, total, stats.TotalSize)
}

func TestClearAllData(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "ana@example.com", "pw", "Ana")
	require.NoError(t, err)
	_, err = svc.CreateDailyRecord(ctx, domain.NewDailyRecord{Date: date(t, "2024-03-01")})
	require.NoError(t, err)
	require.NoError(t, svc.MarkTutorialAsSeen(ctx))

	require.NoError(t, svc.ClearAllData(ctx))

	assert.Nil(t, svc.GetCurrentUser(ctx))
	assert.Nil(t, svc.GetUserProfile(ctx))
	assert.Empty(t, svc.GetDailyRecords(ctx))
	assert.False(t, svc.HasUserSeenTutorial(ctx))
	assert.Zero(t, svc.GetStorageStats(ctx).ItemCount)
}
