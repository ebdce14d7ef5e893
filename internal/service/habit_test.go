package service

import (
	"testing"

	"github.com/momentumhq/momentum/internal/db/testdb"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabitCreateValidation(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	habitService := NewHabitService(repository.NewHabitRepository(database), repository.NewActivityRepository(database))

	_, err := habitService.Create(user.ID, "", "health", model.FrequencyDaily, nil)
	assert.ErrorIs(t, err, ErrHabitNameRequired)

	_, err = habitService.Create(user.ID, "Meditate", "health", "hourly", nil)
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	habit, err := habitService.Create(user.ID, "Meditate", "health", model.FrequencyDaily, &model.ReminderSettings{
		Times:   []string{"08:00"},
		Enabled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, habit.CurrentStreak)
	assert.Equal(t, 0, habit.LongestStreak)
	assert.True(t, habit.ReminderSettings.Valid)
}

// Streaks: completions push both counters up together; a reset zeroes the
// current streak but the longest keeps its high-water mark.
func TestHabitStreakLifecycle(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	habitService := NewHabitService(repository.NewHabitRepository(database), repository.NewActivityRepository(database))

	habit, err := habitService.Create(user.ID, "Run", "fitness", model.FrequencyDaily, nil)
	require.NoError(t, err)

	habit, err = habitService.Complete(user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, habit.CurrentStreak)
	assert.Equal(t, 1, habit.LongestStreak)

	habit, err = habitService.Complete(user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, habit.CurrentStreak)
	assert.Equal(t, 2, habit.LongestStreak)

	habit, err = habitService.ResetStreak(user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, habit.CurrentStreak)
	assert.Equal(t, 2, habit.LongestStreak)

	// Next completion starts a new streak under the old high-water mark
	habit, err = habitService.Complete(user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, habit.CurrentStreak)
	assert.Equal(t, 2, habit.LongestStreak)
}

func TestHabitCompleteWritesActivity(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	activityRepo := repository.NewActivityRepository(database)
	habitService := NewHabitService(repository.NewHabitRepository(database), activityRepo)

	habit, err := habitService.Create(user.ID, "Run", "fitness", model.FrequencyDaily, nil)
	require.NoError(t, err)

	_, err = habitService.Complete(user.ID, habit.ID)
	require.NoError(t, err)

	activities, err := activityRepo.ByUser(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, model.ActivityHabitCompletion, activities[0].Type)
	require.NotNil(t, activities[0].ReferenceID)
	assert.Equal(t, habit.ID, *activities[0].ReferenceID)
	assert.Equal(t, "Run", activities[0].Data.Data.Title)
}

func TestHabitOwnershipScoping(t *testing.T) {
	database := testdb.New(t)
	owner := createTestUser(t, database, "ada@example.com")
	other := createTestUser(t, database, "bob@example.com")
	habitService := NewHabitService(repository.NewHabitRepository(database), repository.NewActivityRepository(database))

	habit, err := habitService.Create(owner.ID, "Run", "fitness", model.FrequencyDaily, nil)
	require.NoError(t, err)

	_, err = habitService.ByID(other.ID, habit.ID)
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)

	_, err = habitService.Complete(other.ID, habit.ID)
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)

	err = habitService.Delete(other.ID, habit.ID)
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)
}
