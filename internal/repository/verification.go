package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrVerificationNotFound = errors.New("verification not found")
)

type VerificationRepository interface {
	Create(verification *model.Verification) error
	Consume(identifier, value string) (*model.Verification, error)
	DeleteByIdentifier(identifier string) error
	DeleteExpired(before time.Time) (int64, error)
}

type verificationRepository struct {
	db *sqlx.DB
}

func NewVerificationRepository(db *sqlx.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(verification *model.Verification) error {
	query := `INSERT INTO verifications (id, identifier, value, expires_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		verification.ID,
		verification.Identifier,
		verification.Value,
		verification.ExpiresAt,
		verification.CreatedAt,
		verification.UpdatedAt,
	)
	return err
}

// Consume atomically deletes a live verification and returns it. Only one
// caller can win; concurrent attempts get ErrVerificationNotFound.
func (r *verificationRepository) Consume(identifier, value string) (*model.Verification, error) {
	var v model.Verification

	query := `DELETE FROM verifications
	          WHERE identifier = $1 AND value = $2 AND expires_at > $3
	          RETURNING *`

	err := r.db.Get(&v, query, identifier, value, time.Now())
	if err == sql.ErrNoRows {
		return nil, ErrVerificationNotFound
	}
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *verificationRepository) DeleteByIdentifier(identifier string) error {
	query := `DELETE FROM verifications WHERE identifier = $1`
	_, err := r.db.Exec(query, identifier)
	return err
}

func (r *verificationRepository) DeleteExpired(before time.Time) (int64, error) {
	query := `DELETE FROM verifications WHERE expires_at < $1`

	result, err := r.db.Exec(query, before)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
