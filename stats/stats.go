// Package stats derives the adherence metrics shown by the UI from the
// daily record list. Every function is pure: it takes a snapshot of the
// records plus the evaluation time and computes from scratch — at daily
// granularity the list stays small enough that caching would buy nothing.
package stats

import (
	"sort"
	"time"

	"github.com/rmcosta/capsulelog/domain"
)

// completionWindowDays is the fixed denominator of the completion rate. It
// stays 30 regardless of how long the account has existed; this is product
// policy, not an oversight.
const completionWindowDays = 30

// Summary holds the adherence metrics computed over the whole record list.
type Summary struct {
	TotalDays       int     `json:"totalDays"`
	TotalCapsules   int     `json:"totalCapsules"`
	AverageCapsules float64 `json:"averageCapsules"`
	CurrentStreak   int     `json:"currentStreak"`
	CompletionRate  float64 `json:"completionRate"`
}

// Progress is the current-calendar-month completion view for the home screen.
type Progress struct {
	CompletedDays    int     `json:"completedDays"`
	TotalDaysInMonth int     `json:"totalDaysInMonth"`
	Percent          float64 `json:"percent"`
}

// Compute derives the summary metrics from the record list as of now.
func Compute(records []domain.DailyRecord, now time.Time) Summary {
	today := domain.DateOf(now)

	var completed []domain.DailyRecord
	totalCapsules := 0
	for _, record := range records {
		if record.Completed {
			completed = append(completed, record)
			totalCapsules += record.Capsules
		}
	}

	summary := Summary{
		TotalDays:     len(completed),
		TotalCapsules: totalCapsules,
	}
	if summary.TotalDays > 0 {
		summary.AverageCapsules = float64(totalCapsules) / float64(summary.TotalDays)
	}

	summary.CurrentStreak = currentStreak(completed, today)
	summary.CompletionRate = completionRate(records, today)
	return summary
}

// currentStreak counts consecutive completed calendar days ending today.
// A gap, or a record dated in the future, ends the streak at that point.
func currentStreak(completed []domain.DailyRecord, today domain.Date) int {
	dates := make([]domain.Date, len(completed))
	for i, record := range completed {
		dates[i] = record.Date
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	streak := 0
	for i, date := range dates {
		if date != today.AddDays(-i) {
			break
		}
		streak++
	}
	return streak
}

// completionRate is the percentage of the last 30 calendar days (including
// today) carrying a completed record. The denominator is always 30.
func completionRate(records []domain.DailyRecord, today domain.Date) float64 {
	windowStart := today.AddDays(-(completionWindowDays - 1))

	count := 0
	for _, record := range records {
		if !record.Completed {
			continue
		}
		if !record.Date.Before(windowStart) && !record.Date.After(today) {
			count++
		}
	}
	return float64(count) / completionWindowDays * 100
}

// MonthlyProgress derives the current-month completion view as of now. The
// denominator is the actual number of days in the month (28–31).
func MonthlyProgress(records []domain.DailyRecord, now time.Time) Progress {
	today := domain.DateOf(now)
	totalDays := today.DaysInMonth()

	completedDays := 0
	for _, record := range records {
		if record.Completed && record.Date.Year == today.Year && record.Date.Month == today.Month {
			completedDays++
		}
	}

	return Progress{
		CompletedDays:    completedDays,
		TotalDaysInMonth: totalDays,
		Percent:          float64(completedDays) / float64(totalDays) * 100,
	}
}
