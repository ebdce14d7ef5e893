package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrPomodoroNotFound = errors.New("pomodoro session not found")
)

type PomodoroRepository interface {
	Create(session *model.PomodoroSession) error
	ByID(userID, sessionID string) (*model.PomodoroSession, error)
	ByUser(userID string, limit int) ([]*model.PomodoroSession, error)
	Active(userID string) (*model.PomodoroSession, error)
	Finish(userID, sessionID, status string, endTime time.Time) error
}

type pomodoroRepository struct {
	db *sqlx.DB
}

func NewPomodoroRepository(db *sqlx.DB) PomodoroRepository {
	return &pomodoroRepository{db: db}
}

func (r *pomodoroRepository) Create(session *model.PomodoroSession) error {
	query := `INSERT INTO pomodoro_sessions (id, user_id, duration, start_time, end_time, status)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		session.ID,
		session.UserID,
		session.Duration,
		session.StartTime,
		session.EndTime,
		session.Status,
	)
	return err
}

func (r *pomodoroRepository) ByID(userID, sessionID string) (*model.PomodoroSession, error) {
	session := &model.PomodoroSession{}
	query := `SELECT * FROM pomodoro_sessions WHERE id = $1 AND user_id = $2`

	err := r.db.Get(session, query, sessionID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrPomodoroNotFound
	}

	return session, err
}

func (r *pomodoroRepository) ByUser(userID string, limit int) ([]*model.PomodoroSession, error) {
	var sessions []*model.PomodoroSession
	query := `SELECT * FROM pomodoro_sessions WHERE user_id = $1 ORDER BY start_time DESC LIMIT $2`

	err := r.db.Select(&sessions, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *pomodoroRepository) Active(userID string) (*model.PomodoroSession, error) {
	session := &model.PomodoroSession{}
	query := `SELECT * FROM pomodoro_sessions WHERE user_id = $1 AND status = $2 ORDER BY start_time DESC LIMIT 1`

	err := r.db.Get(session, query, userID, model.PomodoroActive)
	if err == sql.ErrNoRows {
		return nil, ErrPomodoroNotFound
	}

	return session, err
}

// Finish moves an active session to completed/interrupted and stamps end_time
// in the same statement. Sessions that already left the active state are not
// touched.
func (r *pomodoroRepository) Finish(userID, sessionID, status string, endTime time.Time) error {
	query := `UPDATE pomodoro_sessions
	          SET status = $1, end_time = $2
	          WHERE id = $3 AND user_id = $4 AND status = $5`

	result, err := r.db.Exec(query, status, endTime, sessionID, userID, model.PomodoroActive)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPomodoroNotFound
	}

	return nil
}
