package service

import (
	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
)

const defaultFeedLimit = 50

type ActivityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

func (s *ActivityService) Activities(userID string, limit int) ([]*model.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultFeedLimit
	}
	return s.repo.ByUser(userID, limit)
}

// Feed returns the social feed: the user's own entries merged with those of
// everyone they follow, newest first.
func (s *ActivityService) Feed(userID string, limit int) ([]*model.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultFeedLimit
	}
	return s.repo.Feed(userID, limit)
}
