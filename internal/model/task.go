package model

import (
	"time"
)

// Task invariant: CompletedAt is set if and only if Completed is true. Both
// columns are always written in the same UPDATE (see TaskService).
type Task struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	Title       string     `db:"title" json:"title"`
	Category    *string    `db:"category" json:"category,omitempty"`
	DueDate     *time.Time `db:"due_date" json:"dueDate,omitempty"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`
}
