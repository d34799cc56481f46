package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmcosta/capsulelog/domain"
)

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestCreateAndGetDailyRecords(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Created out of order on purpose.
	for _, day := range []string{"2024-03-02", "2024-03-05", "2024-03-01", "2024-03-04"} {
		id, err := svc.CreateDailyRecord(ctx, domain.NewDailyRecord{
			Date:      date(t, day),
			Capsules:  2,
			Time:      "08:30",
			Completed: true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	}

	records := svc.GetDailyRecords(ctx)
	require.Len(t, records, 4)

	want := []string{"2024-03-05", "2024-03-04", "2024-03-02", "2024-03-01"}
	for i, record := range records {
		assert.Equal(t, want[i], record.Date.String())
	}
}

func TestCreateDailyRecordAllowsDuplicateDates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	day := domain.NewDailyRecord{Date: date(t, "2024-03-01"), Capsules: 1, Time: "08:00"}
	_, err := svc.CreateDailyRecord(ctx, day)
	require.NoError(t, err)
	_, err = svc.CreateDailyRecord(ctx, day)
	require.NoError(t, err)

	// Duplicate dates are the caller's responsibility to avoid.
	assert.Len(t, svc.GetDailyRecords(ctx), 2)
}

func TestGetDailyRecordsDegradesToEmpty(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	records := svc.GetDailyRecords(ctx)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	require.NoError(t, store.Set(ctx, svc.key(keyDailyRecords), "corrupted"))
	assert.Empty(t, svc.GetDailyRecords(ctx))
}

func TestGetDailyRecordByDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateDailyRecord(ctx, domain.NewDailyRecord{
		Date: date(t, "2024-03-01"), Capsules: 3, Time: "09:00", Completed: true,
	})
	require.NoError(t, err)

	found := svc.GetDailyRecordByDate(ctx, date(t, "2024-03-01"))
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)

	assert.Nil(t, svc.GetDailyRecordByDate(ctx, date(t, "2024-03-02")))
}

func TestUpdateDailyRecord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateDailyRecord(ctx, domain.NewDailyRecord{
		Date: date(t, "2024-03-01"), Capsules: 1, Time: "08:00",
	})
	require.NoError(t, err)

	capsules := 4
	completed := true
	notes := "after lunch"
	err = svc.UpdateDailyRecord(ctx, id, domain.RecordUpdate{
		Capsules:  &capsules,
		Completed: &completed,
		Notes:     &notes,
	})
	require.NoError(t, err)

	record := svc.GetDailyRecordByDate(ctx, date(t, "2024-03-01"))
	require.NotNil(t, record)
	assert.Equal(t, 4, record.Capsules)
	assert.True(t, record.Completed)
	require.NotNil(t, record.Notes)
	assert.Equal(t, "after lunch", *record.Notes)
	assert.Equal(t, "08:00", record.Time, "unset fields stay untouched")
	assert.True(t, record.UpdatedAt.After(record.CreatedAt) || record.UpdatedAt.Equal(record.CreatedAt))
}

func TestUpdateDailyRecordNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateDailyRecord(ctx, domain.NewDailyRecord{Date: date(t, "2024-03-01")})
	require.NoError(t, err)

	capsules := 2
	err = svc.UpdateDailyRecord(ctx, "no-such-id", domain.RecordUpdate{Capsules: &capsules})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	records := svc.GetDailyRecords(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].Capsules, "failed update must leave the list unchanged")
}

func TestDeleteDailyRecord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateDailyRecord(ctx, domain.NewDailyRecord{Date: date(t, "2024-03-01")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDailyRecord(ctx, id))
	assert.Empty(t, svc.GetDailyRecords(ctx))

	// Deleting an absent id is a silent no-op.
	require.NoError(t, svc.DeleteDailyRecord(ctx, id))
	require.NoError(t, svc.DeleteDailyRecord(ctx, "never-existed"))
}

func TestClearAllDailyRecords(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, day := range []string{"2024-03-01", "2024-03-02"} {
		_, err := svc.CreateDailyRecord(ctx, domain.NewDailyRecord{Date: date(t, day)})
		require.NoError(t, err)
	}

	require.NoError(t, svc.ClearAllDailyRecords(ctx))
	assert.Empty(t, svc.GetDailyRecords(ctx))
}
