package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmcosta/capsulelog/domain"
)

func TestExportImportRoundTrip(t *testing.T) {
	source, _ := newTestService(t)
	ctx := context.Background()

	_, err := source.RegisterUser(ctx, "ana@example.com", "pw", "Ana")
	require.NoError(t, err)

	phone := "+351 912 000 000"
	_, err = source.UpdateUserProfile(ctx, domain.ProfileUpdate{Phone: &phone})
	require.NoError(t, err)

	for _, day := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		_, err := source.CreateDailyRecord(ctx, domain.NewDailyRecord{
			Date: date(t, day), Capsules: 2, Time: "08:00", Completed: true,
		})
		require.NoError(t, err)
	}

	theme := domain.ThemeDark
	_, err = source.UpdateUserSettings(ctx, domain.SettingsUpdate{Theme: &theme})
	require.NoError(t, err)

	data, err := source.ExportAllData(ctx)
	require.NoError(t, err)

	var doc ExportData
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, exportVersion, doc.Metadata.Version)
	assert.NotEmpty(t, doc.Metadata.Platform)
	require.NotNil(t, doc.User)
	assert.Equal(t, "ana@example.com", doc.User.Email)

	// Import into a fresh store reproduces profile, records and settings.
	target, _ := newTestService(t)
	require.NoError(t, target.ImportAllData(ctx, data))

	profile := target.GetUserProfile(ctx)
	require.NotNil(t, profile)
	assert.Equal(t, source.GetUserProfile(ctx), profile)

	assert.Equal(t, source.GetDailyRecords(ctx), target.GetDailyRecords(ctx))
	assert.Equal(t, source.GetUserSettings(ctx), target.GetUserSettings(ctx))

	// The user list itself is not part of the import.
	users, err := target.readUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestImportAllDataPartial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateDailyRecord(ctx, domain.NewDailyRecord{Date: date(t, "2024-03-01")})
	require.NoError(t, err)

	// Only settings present: records must stay untouched.
	doc := `{"settings":{"notifications":false,"reminderTime":"10:00","dailyGoal":2,"weeklyGoal":10,"theme":"dark","language":"en"}}`
	require.NoError(t, svc.ImportAllData(ctx, []byte(doc)))

	assert.Len(t, svc.GetDailyRecords(ctx), 1)
	settings := svc.GetUserSettings(ctx)
	assert.False(t, settings.Notifications)
	assert.Equal(t, domain.LanguageEN, settings.Language)
}

func TestImportAllDataParseErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.ImportAllData(ctx, []byte("{not json at all"))
	assert.ErrorIs(t, err, ErrImportParse)

	err = svc.ImportAllData(ctx, []byte(`{"records":{"not":"a list"}}`))
	assert.ErrorIs(t, err, ErrImportParse)
}
