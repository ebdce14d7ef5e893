package model

import (
	"time"
)

// Verification is a one-off proof-of-possession code, keyed by the identifier
// being proven (e.g. an email address) rather than a user id.
type Verification struct {
	ID         string    `db:"id" json:"id"`
	Identifier string    `db:"identifier" json:"identifier"`
	Value      string    `db:"value" json:"-"`
	ExpiresAt  time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

func (v *Verification) IsExpired() bool {
	return time.Now().After(v.ExpiresAt)
}
