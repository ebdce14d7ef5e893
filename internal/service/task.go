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
	ErrTaskTitleRequired = errors.New("task title is required")
)

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(userID, title string, category *string, dueDate *time.Time) (*model.Task, error) {
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	task := &model.Task{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Category:  category,
		DueDate:   dueDate,
		Completed: false,
	}

	err := s.repo.Create(task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *TaskService) ByID(userID, taskID string) (*model.Task, error) {
	return s.repo.ByID(userID, taskID)
}

func (s *TaskService) Tasks(userID, filter string) ([]*model.Task, error) {
	return s.repo.ByUser(userID, filter)
}

func (s *TaskService) Update(userID, taskID, title string, category *string, dueDate *time.Time) (*model.Task, error) {
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	task, err := s.repo.ByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Category = category
	task.DueDate = dueDate

	err = s.repo.Update(task)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// SetCompleted flips completion and keeps completed_at paired with it:
// non-null exactly when completed is true.
func (s *TaskService) SetCompleted(userID, taskID string, completed bool) (*model.Task, error) {
	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	err := s.repo.SetCompleted(userID, taskID, completed, completedAt)
	if err != nil {
		return nil, err
	}

	return s.repo.ByID(userID, taskID)
}

func (s *TaskService) Delete(userID, taskID string) error {
	return s.repo.Delete(userID, taskID)
}
