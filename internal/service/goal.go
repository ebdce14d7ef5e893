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
	ErrGoalTitleRequired    = errors.New("goal title is required")
	ErrGoalAlreadyCompleted = errors.New("goal already completed")
)

type GoalService struct {
	repo         repository.GoalRepository
	activityRepo repository.ActivityRepository
}

func NewGoalService(repo repository.GoalRepository, activityRepo repository.ActivityRepository) *GoalService {
	return &GoalService{
		repo:         repo,
		activityRepo: activityRepo,
	}
}

func (s *GoalService) Create(userID, title, category string, targetDate *time.Time, metrics *model.GoalMetrics) (*model.Goal, error) {
	if title == "" {
		return nil, ErrGoalTitleRequired
	}

	goal := &model.Goal{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      title,
		Category:   category,
		TargetDate: targetDate,
		Completed:  false,
		CreatedAt:  time.Now(),
	}
	if metrics != nil {
		goal.Metrics = model.NewJSONField(*metrics)
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID string, includeCompleted bool) ([]*model.Goal, error) {
	return s.repo.ByUser(userID, includeCompleted)
}

func (s *GoalService) Update(userID, goalID, title, category string, targetDate *time.Time, metrics *model.GoalMetrics) (*model.Goal, error) {
	if title == "" {
		return nil, ErrGoalTitleRequired
	}

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Title = title
	goal.Category = category
	goal.TargetDate = targetDate
	goal.Metrics = model.JSONField[model.GoalMetrics]{}
	if metrics != nil {
		goal.Metrics = model.NewJSONField(*metrics)
	}

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Complete marks the goal achieved and writes an immutable feed entry.
func (s *GoalService) Complete(userID, goalID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if goal.Completed {
		return nil, ErrGoalAlreadyCompleted
	}

	goal.Completed = true

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	data := model.ActivityData{Title: goal.Title}
	if goal.Metrics.Valid {
		data.Metrics = map[string]any{
			"target":  goal.Metrics.Data.Target,
			"current": goal.Metrics.Data.Current,
			"unit":    goal.Metrics.Data.Unit,
		}
	}

	activity := &model.Activity{
		ID:          uuid.New().String(),
		UserID:      userID,
		ReferenceID: &goal.ID,
		Type:        model.ActivityGoalAchieved,
		Data:        model.NewJSONField(data),
		CreatedAt:   time.Now(),
	}

	err = s.activityRepo.Create(activity)
	if err != nil {
		return nil, fmt.Errorf("failed to record goal achievement: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Delete(userID, goalID string) error {
	return s.repo.Delete(userID, goalID)
}
