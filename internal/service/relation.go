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
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)

type RelationService struct {
	repo     repository.RelationRepository
	userRepo repository.UserRepository
}

func NewRelationService(repo repository.RelationRepository, userRepo repository.UserRepository) *RelationService {
	return &RelationService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Follow creates a directed follow edge. Self-follows are rejected here;
// duplicates are rejected here and, for concurrent requests, by the unique
// index on (follower_id, following_id).
func (s *RelationService) Follow(followerID, followingID string) (*model.UserRelation, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	_, err := s.userRepo.ByID(followingID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(followerID, followingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check relation: %w", err)
	}
	if exists {
		return nil, ErrAlreadyFollowing
	}

	relation := &model.UserRelation{
		ID:          uuid.New().String(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	}

	err = s.repo.Create(relation)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRelation) {
			return nil, ErrAlreadyFollowing
		}
		return nil, fmt.Errorf("failed to create relation: %w", err)
	}

	return relation, nil
}

func (s *RelationService) Unfollow(followerID, followingID string) error {
	err := s.repo.Delete(followerID, followingID)
	if errors.Is(err, repository.ErrRelationNotFound) {
		return ErrNotFollowing
	}
	return err
}

func (s *RelationService) Followers(userID string) ([]*model.User, error) {
	return s.repo.Followers(userID)
}

func (s *RelationService) Following(userID string) ([]*model.User, error) {
	return s.repo.Following(userID)
}
