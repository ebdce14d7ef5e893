package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

type SessionRepository interface {
	Create(session *model.Session) error
	ByToken(token string) (*model.Session, error)
	Extend(id string, expiresAt, updatedAt time.Time) error
	DeleteByToken(token string) error
	DeleteExpired(before time.Time) (int64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	query := `INSERT INTO sessions (id, expires_at, token, created_at, updated_at, ip_address, user_agent, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		session.ID,
		session.ExpiresAt,
		session.Token,
		session.CreatedAt,
		session.UpdatedAt,
		session.IPAddress,
		session.UserAgent,
		session.UserID,
	)
	return err
}

func (r *sessionRepository) ByToken(token string) (*model.Session, error) {
	session := &model.Session{}
	query := `SELECT * FROM sessions WHERE token = $1`

	err := r.db.Get(session, query, token)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}

	return session, err
}

// Extend pushes the session expiry forward (sliding-window renewal).
func (r *sessionRepository) Extend(id string, expiresAt, updatedAt time.Time) error {
	query := `UPDATE sessions SET expires_at = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, expiresAt, updatedAt, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *sessionRepository) DeleteByToken(token string) error {
	query := `DELETE FROM sessions WHERE token = $1`
	_, err := r.db.Exec(query, token)
	return err
}

// DeleteExpired removes sessions whose expiry has passed. Expired sessions are
// already rejected on lookup; this is periodic housekeeping.
func (r *sessionRepository) DeleteExpired(before time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < $1`

	result, err := r.db.Exec(query, before)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
