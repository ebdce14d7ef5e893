package service

import (
	"testing"

	"github.com/momentumhq/momentum/internal/db/testdb"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitnessLogAndFilter(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	fitnessService := NewFitnessService(repository.NewFitnessRepository(database))

	_, err := fitnessService.Log(user.ID, "", 5, nil)
	assert.ErrorIs(t, err, ErrActivityTypeRequired)

	distance := 5.2
	duration := 31.0
	_, err = fitnessService.Log(user.ID, "running", 5.2, &model.FitnessMetadata{
		Distance: &distance,
		Duration: &duration,
	})
	require.NoError(t, err)
	_, err = fitnessService.Log(user.ID, "cycling", 20, nil)
	require.NoError(t, err)

	logs, err := fitnessService.Logs(user.ID, "", 0)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = fitnessService.Logs(user.ID, "running", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "running", logs[0].ActivityType)
	require.True(t, logs[0].Metadata.Valid)
	require.NotNil(t, logs[0].Metadata.Data.Distance)
	assert.InDelta(t, 5.2, *logs[0].Metadata.Data.Distance, 0.001)
}

func TestFitnessDeleteScopedToOwner(t *testing.T) {
	database := testdb.New(t)
	owner := createTestUser(t, database, "ada@example.com")
	other := createTestUser(t, database, "bob@example.com")
	fitnessService := NewFitnessService(repository.NewFitnessRepository(database))

	log, err := fitnessService.Log(owner.ID, "running", 5, nil)
	require.NoError(t, err)

	err = fitnessService.Delete(other.ID, log.ID)
	assert.ErrorIs(t, err, repository.ErrFitnessLogNotFound)

	err = fitnessService.Delete(owner.ID, log.ID)
	require.NoError(t, err)
}
