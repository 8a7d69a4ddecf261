package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/socialgit/socialgit-api/internal/models"
	"github.com/socialgit/socialgit-api/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user info: %w", err)
	}

	if !isExist {
		slog.Info("user not found", "user_id", id)
		return nil, ErrNotFound
	}

	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.u.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}
