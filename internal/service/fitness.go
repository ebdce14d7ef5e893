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
	ErrActivityTypeRequired = errors.New("activity type is required")
)

type FitnessService struct {
	repo repository.FitnessRepository
}

func NewFitnessService(repo repository.FitnessRepository) *FitnessService {
	return &FitnessService{repo: repo}
}

func (s *FitnessService) Log(userID, activityType string, value float64, metadata *model.FitnessMetadata) (*model.FitnessLog, error) {
	if activityType == "" {
		return nil, ErrActivityTypeRequired
	}

	log := &model.FitnessLog{
		ID:           uuid.New().String(),
		UserID:       userID,
		ActivityType: activityType,
		Value:        value,
		LoggedAt:     time.Now(),
	}
	if metadata != nil {
		log.Metadata = model.NewJSONField(*metadata)
	}

	err := s.repo.Create(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness log: %w", err)
	}

	return log, nil
}

func (s *FitnessService) Logs(userID, activityType string, limit int) ([]*model.FitnessLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	if activityType != "" {
		return s.repo.ByUserAndType(userID, activityType, limit)
	}
	return s.repo.ByUser(userID, limit)
}

func (s *FitnessService) Delete(userID, logID string) error {
	return s.repo.Delete(userID, logID)
}
