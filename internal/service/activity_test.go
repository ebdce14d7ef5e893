package service

import (
	"testing"

	"github.com/momentumhq/momentum/internal/db/testdb"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The feed contains the caller's own entries and those of followed users,
// and nothing from strangers.
func TestFeedScope(t *testing.T) {
	database := testdb.New(t)
	ada := createTestUser(t, database, "ada@example.com")
	bob := createTestUser(t, database, "bob@example.com")
	carol := createTestUser(t, database, "carol@example.com")

	activityRepo := repository.NewActivityRepository(database)
	habitService := NewHabitService(repository.NewHabitRepository(database), activityRepo)
	relationService := NewRelationService(repository.NewRelationRepository(database), repository.NewUserRepository(database))
	activityService := NewActivityService(activityRepo)

	_, err := relationService.Follow(ada.ID, bob.ID)
	require.NoError(t, err)

	for _, u := range []*model.User{ada, bob, carol} {
		habit, err := habitService.Create(u.ID, "Run", "fitness", model.FrequencyDaily, nil)
		require.NoError(t, err)
		_, err = habitService.Complete(u.ID, habit.ID)
		require.NoError(t, err)
	}

	feed, err := activityService.Feed(ada.ID, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	for _, a := range feed {
		assert.Contains(t, []string{ada.ID, bob.ID}, a.UserID)
	}

	// Following is directed: bob's feed has only his own entry
	feed, err = activityService.Feed(bob.ID, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, bob.ID, feed[0].UserID)
}

func TestActivitiesNewestFirst(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	activityRepo := repository.NewActivityRepository(database)
	habitService := NewHabitService(repository.NewHabitRepository(database), activityRepo)
	activityService := NewActivityService(activityRepo)

	habit, err := habitService.Create(user.ID, "Run", "fitness", model.FrequencyDaily, nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = habitService.Complete(user.ID, habit.ID)
		require.NoError(t, err)
	}

	activities, err := activityService.Activities(user.ID, 0)
	require.NoError(t, err)
	require.Len(t, activities, 3)
	for i := 1; i < len(activities); i++ {
		assert.False(t, activities[i].CreatedAt.After(activities[i-1].CreatedAt))
	}
}

func TestFeedLimit(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	activityRepo := repository.NewActivityRepository(database)
	habitService := NewHabitService(repository.NewHabitRepository(database), activityRepo)
	activityService := NewActivityService(activityRepo)

	habit, err := habitService.Create(user.ID, "Run", "fitness", model.FrequencyDaily, nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = habitService.Complete(user.ID, habit.ID)
		require.NoError(t, err)
	}

	feed, err := activityService.Feed(user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}
