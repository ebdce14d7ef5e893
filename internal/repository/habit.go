package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

type HabitRepository interface {
	Create(habit *model.Habit) error
	ByID(userID, habitID string) (*model.Habit, error)
	ByUser(userID string) ([]*model.Habit, error)
	Update(habit *model.Habit) error
	UpdateStreaks(userID, habitID string, current, longest int) error
	Delete(userID, habitID string) error
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(habit *model.Habit) error {
	query := `INSERT INTO habits (id, user_id, name, category, frequency, reminder_settings, current_streak, longest_streak, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.Category,
		habit.Frequency,
		habit.ReminderSettings,
		habit.CurrentStreak,
		habit.LongestStreak,
		habit.CreatedAt,
	)
	return err
}

func (r *habitRepository) ByID(userID, habitID string) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE id = $1 AND user_id = $2`

	err := r.db.Get(habit, query, habitID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}

	return habit, err
}

func (r *habitRepository) ByUser(userID string) ([]*model.Habit, error) {
	var habits []*model.Habit
	query := `SELECT * FROM habits WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&habits, query, userID)
	if err != nil {
		return nil, err
	}

	return habits, nil
}

func (r *habitRepository) Update(habit *model.Habit) error {
	query := `UPDATE habits
	          SET name = $1, category = $2, frequency = $3, reminder_settings = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		habit.Name,
		habit.Category,
		habit.Frequency,
		habit.ReminderSettings,
		habit.ID,
		habit.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}

// UpdateStreaks writes both counters in one statement so the
// current <= longest high-water mark is never observable mid-update.
func (r *habitRepository) UpdateStreaks(userID, habitID string, current, longest int) error {
	query := `UPDATE habits
	          SET current_streak = $1, longest_streak = $2
	          WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, current, longest, habitID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}

func (r *habitRepository) Delete(userID, habitID string) error {
	query := `DELETE FROM habits WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, habitID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}
