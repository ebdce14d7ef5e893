package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

type AccountRepository interface {
	Create(account *model.Account) error
	ByUserAndProvider(userID, providerID string) (*model.Account, error)
	ByProviderAccount(providerID, accountID string) (*model.Account, error)
	Update(account *model.Account) error
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *model.Account) error {
	query := `INSERT INTO accounts (id, account_id, provider_id, user_id, access_token, refresh_token, id_token,
	                                access_token_expires_at, refresh_token_expires_at, scope, password, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(query,
		account.ID,
		account.AccountID,
		account.ProviderID,
		account.UserID,
		account.AccessToken,
		account.RefreshToken,
		account.IDToken,
		account.AccessTokenExpiresAt,
		account.RefreshTokenExpiresAt,
		account.Scope,
		account.Password,
		account.CreatedAt,
		account.UpdatedAt,
	)
	return err
}

func (r *accountRepository) ByUserAndProvider(userID, providerID string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE user_id = $1 AND provider_id = $2`

	err := r.db.Get(account, query, userID, providerID)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}

	return account, err
}

func (r *accountRepository) ByProviderAccount(providerID, accountID string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE provider_id = $1 AND account_id = $2`

	err := r.db.Get(account, query, providerID, accountID)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}

	return account, err
}

func (r *accountRepository) Update(account *model.Account) error {
	query := `UPDATE accounts
	          SET access_token = $1, refresh_token = $2, id_token = $3, access_token_expires_at = $4,
	              refresh_token_expires_at = $5, scope = $6, password = $7, updated_at = $8
	          WHERE id = $9`

	result, err := r.db.Exec(query,
		account.AccessToken,
		account.RefreshToken,
		account.IDToken,
		account.AccessTokenExpiresAt,
		account.RefreshTokenExpiresAt,
		account.Scope,
		account.Password,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAccountNotFound
	}

	return nil
}
