package model

import (
	"time"
)

const (
	PomodoroActive      = "active"
	PomodoroCompleted   = "completed"
	PomodoroInterrupted = "interrupted"
)

// PomodoroSession invariant: EndTime is NULL while Status is active; the
// transitions to completed/interrupted set EndTime in the same UPDATE.
type PomodoroSession struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"userId"`
	Duration  int        `db:"duration" json:"duration"` // minutes
	StartTime time.Time  `db:"start_time" json:"startTime"`
	EndTime   *time.Time `db:"end_time" json:"endTime,omitempty"`
	Status    string     `db:"status" json:"status"`
}
