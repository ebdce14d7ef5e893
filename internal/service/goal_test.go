package service

import (
	"testing"

	"github.com/momentumhq/momentum/internal/db/testdb"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalCompleteOnce(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	activityRepo := repository.NewActivityRepository(database)
	goalService := NewGoalService(repository.NewGoalRepository(database), activityRepo)

	goal, err := goalService.Create(user.ID, "Read 12 books", "learning", nil, &model.GoalMetrics{
		Target:  12,
		Current: 12,
		Unit:    "books",
	})
	require.NoError(t, err)

	completed, err := goalService.Complete(user.ID, goal.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	// Completing again is a conflict, and no second feed entry appears
	_, err = goalService.Complete(user.ID, goal.ID)
	assert.ErrorIs(t, err, ErrGoalAlreadyCompleted)

	activities, err := activityRepo.ByUser(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, model.ActivityGoalAchieved, activities[0].Type)
	assert.Equal(t, "Read 12 books", activities[0].Data.Data.Title)
	assert.EqualValues(t, 12, activities[0].Data.Data.Metrics["target"])
}

func TestGoalListHidesCompletedByDefault(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	goalService := NewGoalService(repository.NewGoalRepository(database), repository.NewActivityRepository(database))

	open, err := goalService.Create(user.ID, "Open goal", "misc", nil, nil)
	require.NoError(t, err)
	done, err := goalService.Create(user.ID, "Done goal", "misc", nil, nil)
	require.NoError(t, err)
	_, err = goalService.Complete(user.ID, done.ID)
	require.NoError(t, err)

	goals, err := goalService.Goals(user.ID, false)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, open.ID, goals[0].ID)

	goals, err = goalService.Goals(user.ID, true)
	require.NoError(t, err)
	assert.Len(t, goals, 2)
}

func TestGoalTitleRequired(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	goalService := NewGoalService(repository.NewGoalRepository(database), repository.NewActivityRepository(database))

	_, err := goalService.Create(user.ID, "", "misc", nil, nil)
	assert.ErrorIs(t, err, ErrGoalTitleRequired)
}
