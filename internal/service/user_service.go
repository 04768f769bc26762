package service

import (
	"context"
	"strings"

	"dermassist/internal/converter"
	"dermassist/internal/domain/entity"
	"dermassist/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type UserService interface {
	Me(ctx context.Context, userID string) (*entity.User, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
	SearchDermatologists(ctx context.Context, query string) ([]entity.User, error)
}

type userService struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewUserService(log *logrus.Logger, userRepo repository.UserRepository) UserService {
	return &userService{log: log, userRepo: userRepo}
}

func (s *userService) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.RecordToUser(user), nil
}

// CheckUsername reports whether the username is still available.
func (s *userService) CheckUsername(ctx context.Context, username string) (bool, error) {
	exists, err := s.userRepo.UsernameExists(ctx, strings.TrimSpace(username))
	if err != nil {
		s.log.Warnf("Failed to check username: %+v", err)
		return false, err
	}
	return !exists, nil
}

func (s *userService) SearchDermatologists(ctx context.Context, query string) ([]entity.User, error) {
	users, err := s.userRepo.SearchDermatologists(ctx, query)
	if err != nil {
		s.log.Warnf("Failed to search dermatologists: %+v", err)
		return nil, err
	}
	return users, nil
}
