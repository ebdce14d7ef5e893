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
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrPomodoroRunning = errors.New("a pomodoro session is already active")
)

type PomodoroService struct {
	repo repository.PomodoroRepository
}

func NewPomodoroService(repo repository.PomodoroRepository) *PomodoroService {
	return &PomodoroService{repo: repo}
}

// Start opens an active session with no end time. One active session per user
// at a time.
func (s *PomodoroService) Start(userID string, duration int) (*model.PomodoroSession, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	_, err := s.repo.Active(userID)
	if err == nil {
		return nil, ErrPomodoroRunning
	}
	if !errors.Is(err, repository.ErrPomodoroNotFound) {
		return nil, fmt.Errorf("failed to check active session: %w", err)
	}

	session := &model.PomodoroSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Duration:  duration,
		StartTime: time.Now(),
		Status:    model.PomodoroActive,
	}

	err = s.repo.Create(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create pomodoro session: %w", err)
	}

	return session, nil
}

func (s *PomodoroService) Complete(userID, sessionID string) (*model.PomodoroSession, error) {
	return s.finish(userID, sessionID, model.PomodoroCompleted)
}

func (s *PomodoroService) Interrupt(userID, sessionID string) (*model.PomodoroSession, error) {
	return s.finish(userID, sessionID, model.PomodoroInterrupted)
}

// finish is the only way a session leaves the active state; it stamps the end
// time together with the status change.
func (s *PomodoroService) finish(userID, sessionID, status string) (*model.PomodoroSession, error) {
	err := s.repo.Finish(userID, sessionID, status, time.Now())
	if err != nil {
		return nil, err
	}

	return s.repo.ByID(userID, sessionID)
}

func (s *PomodoroService) Active(userID string) (*model.PomodoroSession, error) {
	return s.repo.Active(userID)
}

func (s *PomodoroService) Sessions(userID string, limit int) ([]*model.PomodoroSession, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ByUser(userID, limit)
}
