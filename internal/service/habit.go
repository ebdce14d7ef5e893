package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
)

var (
	ErrHabitNameRequired = errors.New("habit name is required")
	ErrInvalidFrequency  = errors.New("frequency must be daily, weekly or monthly")
)

type HabitService struct {
	repo         repository.HabitRepository
	activityRepo repository.ActivityRepository
}

func NewHabitService(repo repository.HabitRepository, activityRepo repository.ActivityRepository) *HabitService {
	return &HabitService{
		repo:         repo,
		activityRepo: activityRepo,
	}
}

func (s *HabitService) Create(userID, name, category, frequency string, reminders *model.ReminderSettings) (*model.Habit, error) {
	if name == "" {
		return nil, ErrHabitNameRequired
	}
	if !model.ValidFrequency(frequency) {
		return nil, ErrInvalidFrequency
	}

	habit := &model.Habit{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          name,
		Category:      category,
		Frequency:     frequency,
		CurrentStreak: 0,
		LongestStreak: 0,
		CreatedAt:     time.Now(),
	}
	if reminders != nil {
		habit.ReminderSettings = model.NewJSONField(*reminders)
	}

	err := s.repo.Create(habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) ByID(userID, habitID string) (*model.Habit, error) {
	return s.repo.ByID(userID, habitID)
}

func (s *HabitService) Habits(userID string) ([]*model.Habit, error) {
	return s.repo.ByUser(userID)
}

func (s *HabitService) Update(userID, habitID, name, category, frequency string, reminders *model.ReminderSettings) (*model.Habit, error) {
	if name == "" {
		return nil, ErrHabitNameRequired
	}
	if !model.ValidFrequency(frequency) {
		return nil, ErrInvalidFrequency
	}

	habit, err := s.repo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	habit.Name = name
	habit.Category = category
	habit.Frequency = frequency
	habit.ReminderSettings = model.JSONField[model.ReminderSettings]{}
	if reminders != nil {
		habit.ReminderSettings = model.NewJSONField(*reminders)
	}

	err = s.repo.Update(habit)
	if err != nil {
		return nil, err
	}

	return habit, nil
}

// Complete records one completion: the current streak grows by one, the
// longest streak follows as a high-water mark, and an immutable feed entry is
// written.
func (s *HabitService) Complete(userID, habitID string) (*model.Habit, error) {
	habit, err := s.repo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	habit.CurrentStreak++
	if habit.CurrentStreak > habit.LongestStreak {
		habit.LongestStreak = habit.CurrentStreak
	}

	err = s.repo.UpdateStreaks(userID, habitID, habit.CurrentStreak, habit.LongestStreak)
	if err != nil {
		return nil, err
	}

	activity := &model.Activity{
		ID:          uuid.New().String(),
		UserID:      userID,
		ReferenceID: &habit.ID,
		Type:        model.ActivityHabitCompletion,
		Data: model.NewJSONField(model.ActivityData{
			Title: habit.Name,
			Metrics: map[string]any{
				"currentStreak": habit.CurrentStreak,
				"longestStreak": habit.LongestStreak,
			},
		}),
		CreatedAt: time.Now(),
	}

	err = s.activityRepo.Create(activity)
	if err != nil {
		return nil, fmt.Errorf("failed to record habit completion: %w", err)
	}

	return habit, nil
}

// ResetStreak zeroes the current streak; the longest streak keeps its
// high-water mark.
func (s *HabitService) ResetStreak(userID, habitID string) (*model.Habit, error) {
	habit, err := s.repo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	habit.CurrentStreak = 0

	err = s.repo.UpdateStreaks(userID, habitID, habit.CurrentStreak, habit.LongestStreak)
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Delete(userID, habitID string) error {
	return s.repo.Delete(userID, habitID)
}
