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

func TestUserDuplicateEmail(t *testing.T) {
	database := testdb.New(t)

	insertUser(t, database, "ada@example.com")

	now := time.Now()
	err := NewUserRepository(database).Create(&model.User{
		ID:        uuid.New().String(),
		Name:      "Other Ada",
		Email:     "ada@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserByEmailNotFound(t *testing.T) {
	repo := NewUserRepository(testdb.New(t))

	_, err := repo.ByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDeleteNotFound(t *testing.T) {
	repo := NewUserRepository(testdb.New(t))

	err := repo.Delete("no-such-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdate(t *testing.T) {
	database := testdb.New(t)
	user := insertUser(t, database, "ada@example.com")
	repo := NewUserRepository(database)

	user.Name = "Ada Lovelace"
	err := repo.Update(user)
	require.NoError(t, err)

	got, err := repo.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
}
