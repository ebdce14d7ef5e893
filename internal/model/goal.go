package model

import (
	"time"
)

// GoalMetrics is the structured shape of the goals.metrics JSON column.
type GoalMetrics struct {
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
	Unit    string  `json:"unit"`
}

type Goal struct {
	ID         string                 `db:"id" json:"id"`
	UserID     string                 `db:"user_id" json:"userId"`
	Title      string                 `db:"title" json:"title"`
	Category   string                 `db:"category" json:"category"`
	TargetDate *time.Time             `db:"target_date" json:"targetDate,omitempty"`
	Metrics    JSONField[GoalMetrics] `db:"metrics" json:"metrics"`
	Completed  bool                   `db:"completed" json:"completed"`
	CreatedAt  time.Time              `db:"created_at" json:"createdAt"`
}
