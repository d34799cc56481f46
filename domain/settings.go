package domain

import "time"

// Theme is the UI theme setting
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language is the UI language setting
type Language string

const (
	LanguageEN Language = "en"
	LanguagePT Language = "pt"
)

// UserSettings is the singleton settings object, auto-created with defaults
// on first read.
type UserSettings struct {
	Notifications bool      `json:"notifications"`
	ReminderTime  string    `json:"reminderTime"`
	DailyGoal     int       `json:"dailyGoal"`
	WeeklyGoal    int       `json:"weeklyGoal"`
	Theme         Theme     `json:"theme"`
	Language      Language  `json:"language"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SettingsUpdate is a partial settings change; nil fields are left untouched.
type SettingsUpdate struct {
	Notifications *bool
	ReminderTime  *string
	DailyGoal     *int
	WeeklyGoal    *int
	Theme         *Theme
	Language      *Language
}
