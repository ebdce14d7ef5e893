package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/db/testdb"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerification(identifier, value string, expiresAt time.Time) *model.Verification {
	now := time.Now()
	return &model.Verification{
		ID:         uuid.New().String(),
		Identifier: identifier,
		Value:      value,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestVerificationConsumeIsSingleUse(t *testing.T) {
	repo := NewVerificationRepository(testdb.New(t))

	err := repo.Create(newVerification("ada@example.com", "code-1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	v, err := repo.Consume("ada@example.com", "code-1")
	require.NoError(t, err)
	assert.Equal(t, "code-1", v.Value)

	_, err = repo.Consume("ada@example.com", "code-1")
	assert.ErrorIs(t, err, ErrVerificationNotFound)
}

func TestVerificationConsumeRejectsExpired(t *testing.T) {
	repo := NewVerificationRepository(testdb.New(t))

	err := repo.Create(newVerification("ada@example.com", "code-1", time.Now().Add(-time.Minute)))
	require.NoError(t, err)

	_, err = repo.Consume("ada@example.com", "code-1")
	assert.ErrorIs(t, err, ErrVerificationNotFound)
}

func TestVerificationDeleteExpired(t *testing.T) {
	repo := NewVerificationRepository(testdb.New(t))

	err := repo.Create(newVerification("old@example.com", "code-1", time.Now().Add(-time.Hour)))
	require.NoError(t, err)
	err = repo.Create(newVerification("fresh@example.com", "code-2", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	n, err := repo.DeleteExpired(time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// The live one survives
	_, err = repo.Consume("fresh@example.com", "code-2")
	require.NoError(t, err)
}
