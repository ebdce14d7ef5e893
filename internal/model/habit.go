package model

import (
	"time"
)

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// ReminderSettings is the structured shape of the habits.reminder_settings
// JSON column.
type ReminderSettings struct {
	Times   []string `json:"times"`
	Days    []int    `json:"days,omitempty"`
	Enabled bool     `json:"enabled"`
}

type Habit struct {
	ID               string                      `db:"id" json:"id"`
	UserID           string                      `db:"user_id" json:"userId"`
	Name             string                      `db:"name" json:"name"`
	Category         string                      `db:"category" json:"category"`
	Frequency        string                      `db:"frequency" json:"frequency"`
	ReminderSettings JSONField[ReminderSettings] `db:"reminder_settings" json:"reminderSettings"`
	CurrentStreak    int                         `db:"current_streak" json:"currentStreak"`
	LongestStreak    int                         `db:"longest_streak" json:"longestStreak"`
	CreatedAt        time.Time                   `db:"created_at" json:"createdAt"`
}

func ValidFrequency(frequency string) bool {
	switch frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}
