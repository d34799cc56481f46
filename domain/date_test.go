package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("2024-2-29")
	assert.Error(t, err)

	_, err = ParseDate("not a date")
	assert.Error(t, err)
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	late := time.Date(2024, time.March, 10, 23, 59, 59, 0, loc)
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 10}, DateOf(late))
}

func TestAddDays(t *testing.T) {
	d := Date{Year: 2024, Month: time.March, Day: 1}

	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d.AddDays(-1))
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 31}, d.AddDays(30))
	assert.Equal(t, d, d.AddDays(0))
}

func TestCompare(t *testing.T) {
	a := Date{Year: 2024, Month: time.January, Day: 31}
	b := Date{Year: 2024, Month: time.February, Day: 1}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		date Date
		want int
	}{
		{Date{Year: 2024, Month: time.February, Day: 10}, 29},
		{Date{Year: 2023, Month: time.February, Day: 10}, 28},
		{Date{Year: 2024, Month: time.April, Day: 1}, 30},
		{Date{Year: 2024, Month: time.December, Day: 25}, 31},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.date.DaysInMonth(), "month of %s", tt.date)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	record := DailyRecord{
		ID:   "r1",
		Date: Date{Year: 2024, Month: time.July, Day: 4},
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-07-04"`)

	var decoded DailyRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, record.Date, decoded.Date)
}
