package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

const (
	TaskFilterAll       = "all"
	TaskFilterPending   = "pending"
	TaskFilterCompleted = "completed"
)

type TaskRepository interface {
	Create(task *model.Task) error
	ByID(userID, taskID string) (*model.Task, error)
	ByUser(userID, filter string) ([]*model.Task, error)
	Update(task *model.Task) error
	SetCompleted(userID, taskID string, completed bool, completedAt *time.Time) error
	Delete(userID, taskID string) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	query := `INSERT INTO tasks (id, user_id, title, category, due_date, completed, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		task.ID,
		task.UserID,
		task.Title,
		task.Category,
		task.DueDate,
		task.Completed,
		task.CompletedAt,
	)
	return err
}

func (r *taskRepository) ByID(userID, taskID string) (*model.Task, error) {
	task := &model.Task{}
	query := `SELECT * FROM tasks WHERE id = $1 AND user_id = $2`

	err := r.db.Get(task, query, taskID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}

	return task, err
}

func (r *taskRepository) ByUser(userID, filter string) ([]*model.Task, error) {
	var tasks []*model.Task

	var query string
	switch filter {
	case TaskFilterPending:
		query = `SELECT * FROM tasks WHERE user_id = $1 AND completed = FALSE ORDER BY due_date IS NULL, due_date ASC`
	case TaskFilterCompleted:
		query = `SELECT * FROM tasks WHERE user_id = $1 AND completed = TRUE ORDER BY completed_at DESC`
	default:
		query = `SELECT * FROM tasks WHERE user_id = $1 ORDER BY due_date IS NULL, due_date ASC`
	}

	err := r.db.Select(&tasks, query, userID)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) Update(task *model.Task) error {
	query := `UPDATE tasks
	          SET title = $1, category = $2, due_date = $3
	          WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(query,
		task.Title,
		task.Category,
		task.DueDate,
		task.ID,
		task.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// SetCompleted writes completed and completed_at together so the pairing
// invariant holds after every update.
func (r *taskRepository) SetCompleted(userID, taskID string, completed bool, completedAt *time.Time) error {
	query := `UPDATE tasks
	          SET completed = $1, completed_at = $2
	          WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, completed, completedAt, taskID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) Delete(userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, taskID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTaskNotFound
	}

	return nil
}
