package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/db/testdb"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *sqlx.DB) {
	t.Helper()

	database := testdb.New(t)
	emailService := NewEmailService("", "noreply@example.com", "http://localhost:8090", "Momentum", true)

	authService := NewAuthService(
		repository.NewUserRepository(database),
		repository.NewAccountRepository(database),
		repository.NewSessionRepository(database),
		repository.NewVerificationRepository(database),
		emailService,
		false,
		168*time.Hour,
		24*time.Hour,
		24*time.Hour,
	)

	return authService, database
}

func createTestUser(t *testing.T, database *sqlx.DB, email string) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{
		ID:            uuid.New().String(),
		Name:          "Test User",
		Email:         email,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := repository.NewUserRepository(database).Create(user)
	require.NoError(t, err)

	return user
}
