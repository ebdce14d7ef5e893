package model

import (
	"time"
)

// FitnessMetadata is the structured shape of the fitness_logs.metadata JSON
// column.
type FitnessMetadata struct {
	Distance *float64 `json:"distance,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
}

type FitnessLog struct {
	ID           string                     `db:"id" json:"id"`
	UserID       string                     `db:"user_id" json:"userId"`
	ActivityType string                     `db:"activity_type" json:"activityType"` // weight, cardio, etc.
	Value        float64                    `db:"value" json:"value"`
	Metadata     JSONField[FitnessMetadata] `db:"metadata" json:"metadata"`
	LoggedAt     time.Time                  `db:"logged_at" json:"loggedAt"`
}
