package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/storage"
)

type UserService struct {
	repo    repository.UserRepository
	storage storage.Storage
}

func NewUserService(repo repository.UserRepository, storage storage.Storage) *UserService {
	return &UserService{
		repo:    repo,
		storage: storage,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.repo.ByID(id)
}

func (s *UserService) UpdateName(userID, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	user, err := s.repo.ByID(userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.UpdatedAt = time.Now()

	err = s.repo.Update(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UploadAvatar stores the image and points users.image at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, file io.Reader, contentType string) (*model.User, error) {
	user, err := s.repo.ByID(userID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("avatars/%s", userID)
	err = s.storage.Save(ctx, path, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	url := s.storage.URL(path)
	user.Image = &url
	user.UpdatedAt = time.Now()

	err = s.repo.Update(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) DeleteAvatar(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.ByID(userID)
	if err != nil {
		return nil, err
	}

	if user.Image != nil {
		err = s.storage.Delete(ctx, fmt.Sprintf("avatars/%s", userID))
		if err != nil {
			return nil, err
		}
	}

	user.Image = nil
	user.UpdatedAt = time.Now()

	err = s.repo.Update(user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes the user; the store cascades to sessions, accounts, habits,
// goals, tasks, activities, relations, pomodoro sessions and fitness logs.
func (s *UserService) Delete(userID string) error {
	return s.repo.Delete(userID)
}
