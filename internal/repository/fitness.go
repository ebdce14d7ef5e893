package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrFitnessLogNotFound = errors.New("fitness log not found")
)

type FitnessRepository interface {
	Create(log *model.FitnessLog) error
	ByID(userID, logID string) (*model.FitnessLog, error)
	ByUser(userID string, limit int) ([]*model.FitnessLog, error)
	ByUserAndType(userID, activityType string, limit int) ([]*model.FitnessLog, error)
	Delete(userID, logID string) error
}

type fitnessRepository struct {
	db *sqlx.DB
}

func NewFitnessRepository(db *sqlx.DB) FitnessRepository {
	return &fitnessRepository{db: db}
}

func (r *fitnessRepository) Create(log *model.FitnessLog) error {
	query := `INSERT INTO fitness_logs (id, user_id, activity_type, value, metadata, logged_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		log.ID,
		log.UserID,
		log.ActivityType,
		log.Value,
		log.Metadata,
		log.LoggedAt,
	)
	return err
}

func (r *fitnessRepository) ByID(userID, logID string) (*model.FitnessLog, error) {
	log := &model.FitnessLog{}
	query := `SELECT * FROM fitness_logs WHERE id = $1 AND user_id = $2`

	err := r.db.Get(log, query, logID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrFitnessLogNotFound
	}

	return log, err
}

func (r *fitnessRepository) ByUser(userID string, limit int) ([]*model.FitnessLog, error) {
	var logs []*model.FitnessLog
	query := `SELECT * FROM fitness_logs WHERE user_id = $1 ORDER BY logged_at DESC LIMIT $2`

	err := r.db.Select(&logs, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *fitnessRepository) ByUserAndType(userID, activityType string, limit int) ([]*model.FitnessLog, error) {
	var logs []*model.FitnessLog
	query := `SELECT * FROM fitness_logs WHERE user_id = $1 AND activity_type = $2 ORDER BY logged_at DESC LIMIT $3`

	err := r.db.Select(&logs, query, userID, activityType, limit)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *fitnessRepository) Delete(userID, logID string) error {
	query := `DELETE FROM fitness_logs WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, logID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFitnessLogNotFound
	}

	return nil
}
