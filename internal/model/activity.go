package model

import (
	"time"
)

const (
	ActivityHabitCompletion = "habit_completion"
	ActivityGoalAchieved    = "goal_achieved"
)

// ActivityData is the structured shape of the activities.data JSON column.
type ActivityData struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Metrics     map[string]any `json:"metrics,omitempty"`
}

// Activity is an immutable feed entry. ReferenceID is a soft reference to the
// habit/goal/task that produced it; it carries no referential integrity.
type Activity struct {
	ID          string                  `db:"id" json:"id"`
	UserID      string                  `db:"user_id" json:"userId"`
	ReferenceID *string                 `db:"reference_id" json:"referenceId,omitempty"`
	Type        string                  `db:"type" json:"type"`
	Data        JSONField[ActivityData] `db:"data" json:"data"`
	CreatedAt   time.Time               `db:"created_at" json:"createdAt"`
}
