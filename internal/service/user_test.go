package service

import (
	"context"
	"io"
	"testing"

	"github.com/momentumhq/momentum/internal/db/testdb"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage keeps uploaded paths in memory.
type fakeStorage struct {
	saved   map[string]string
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string]string)}
}

func (f *fakeStorage) Save(_ context.Context, path string, _ io.Reader, contentType string) error {
	f.saved[path] = contentType
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	delete(f.saved, path)
	return nil
}

func (f *fakeStorage) URL(path string) string {
	return "https://cdn.example.com/" + path
}

func TestUpdateName(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	userService := NewUserService(repository.NewUserRepository(database), newFakeStorage())

	_, err := userService.UpdateName(user.ID, "   ")
	assert.ErrorIs(t, err, ErrNameRequired)

	updated, err := userService.UpdateName(user.ID, "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
}

func TestAvatarLifecycle(t *testing.T) {
	database := testdb.New(t)
	user := createTestUser(t, database, "ada@example.com")
	store := newFakeStorage()
	userService := NewUserService(repository.NewUserRepository(database), store)

	updated, err := userService.UploadAvatar(context.Background(), user.ID, nil, "image/png")
	require.NoError(t, err)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "https://cdn.example.com/avatars/"+user.ID, *updated.Image)
	assert.Contains(t, store.saved, "avatars/"+user.ID)

	updated, err = userService.DeleteAvatar(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Image)
	assert.Contains(t, store.deleted, "avatars/"+user.ID)
}

// Deleting a user takes every row that hangs off it: habits, goals, tasks,
// activities, relations (both directions), pomodoro sessions, fitness logs,
// sessions and accounts.
func TestDeleteUserCascades(t *testing.T) {
	database := testdb.New(t)
	ada := createTestUser(t, database, "ada@example.com")
	bob := createTestUser(t, database, "bob@example.com")
	userService := NewUserService(repository.NewUserRepository(database), newFakeStorage())

	activityRepo := repository.NewActivityRepository(database)
	habitService := NewHabitService(repository.NewHabitRepository(database), activityRepo)
	goalService := NewGoalService(repository.NewGoalRepository(database), activityRepo)
	taskService := NewTaskService(repository.NewTaskRepository(database))
	relationService := NewRelationService(repository.NewRelationRepository(database), repository.NewUserRepository(database))
	pomodoroService := NewPomodoroService(repository.NewPomodoroRepository(database))
	fitnessService := NewFitnessService(repository.NewFitnessRepository(database))

	habit, err := habitService.Create(ada.ID, "Run", "fitness", model.FrequencyDaily, nil)
	require.NoError(t, err)
	_, err = habitService.Complete(ada.ID, habit.ID)
	require.NoError(t, err)
	_, err = goalService.Create(ada.ID, "Goal", "misc", nil, nil)
	require.NoError(t, err)
	_, err = taskService.Create(ada.ID, "Task", nil, nil)
	require.NoError(t, err)
	_, err = relationService.Follow(ada.ID, bob.ID)
	require.NoError(t, err)
	_, err = relationService.Follow(bob.ID, ada.ID)
	require.NoError(t, err)
	_, err = pomodoroService.Start(ada.ID, 25)
	require.NoError(t, err)
	_, err = fitnessService.Log(ada.ID, "running", 5, nil)
	require.NoError(t, err)

	err = userService.Delete(ada.ID)
	require.NoError(t, err)

	for _, table := range []string{
		"habits", "goals", "tasks", "activities",
		"pomodoro_sessions", "fitness_logs", "sessions", "accounts",
	} {
		var count int
		err = database.Get(&count, `SELECT COUNT(*) FROM `+table+` WHERE user_id = $1`, ada.ID)
		require.NoError(t, err)
		assert.Zero(t, count, "table %s should be empty for deleted user", table)
	}

	var relations int
	err = database.Get(&relations, `SELECT COUNT(*) FROM user_relations WHERE follower_id = $1 OR following_id = $1`, ada.ID)
	require.NoError(t, err)
	assert.Zero(t, relations)

	_, err = userService.ByID(ada.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
