package service

import (
	"context"
	"fmt"

	"dsatracker/internal/common"
	"dsatracker/internal/common/security"
	"dsatracker/internal/domain/model"
	"dsatracker/internal/domain/repository"
)

type UserService struct {
	userRepo        repository.UserRepository
	defaultPassword string
}

func NewUserService(userRepo repository.UserRepository, defaultPassword string) *UserService {
	return &UserService{userRepo: userRepo, defaultPassword: defaultPassword}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// Create registers a new named user with the shared default password set
// server-side; users change nothing themselves in this system.
func (s *UserService) Create(ctx context.Context, name string) (*model.User, error) {
	if name == "" {
		return nil, common.ErrUserNameRequired
	}

	hashed, err := security.HashPassword(s.defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.Create(ctx, name, hashed)
}
