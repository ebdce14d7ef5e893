package model

import (
	"time"
)

const (
	ProviderCredential = "credential"
	ProviderGoogle     = "google"
	ProviderGitHub     = "github"
)

// Account links a user to one sign-in method. Credential accounts carry a
// bcrypt password hash; OAuth accounts carry the provider tokens.
type Account struct {
	ID                    string     `db:"id" json:"id"`
	AccountID             string     `db:"account_id" json:"accountId"`
	ProviderID            string     `db:"provider_id" json:"providerId"`
	UserID                string     `db:"user_id" json:"userId"`
	AccessToken           *string    `db:"access_token" json:"-"`
	RefreshToken          *string    `db:"refresh_token" json:"-"`
	IDToken               *string    `db:"id_token" json:"-"`
	AccessTokenExpiresAt  *time.Time `db:"access_token_expires_at" json:"-"`
	RefreshTokenExpiresAt *time.Time `db:"refresh_token_expires_at" json:"-"`
	Scope                 *string    `db:"scope" json:"scope,omitempty"`
	Password              *string    `db:"password" json:"-"`
	CreatedAt             time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updatedAt"`
}

func (a *Account) HasPassword() bool {
	return a.Password != nil && *a.Password != ""
}
