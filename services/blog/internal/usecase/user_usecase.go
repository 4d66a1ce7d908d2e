package usecase

import (
	"context"
	"errors"
	"fmt"

	"blog-api/pkg/logger"
	"blog-api/pkg/metrics"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/repo/persistent"
)

type UserUseCase interface {
	// CreateUser registers a user with status NEW and returns its id.
	CreateUser(ctx context.Context, firstName, lastName, email string) (string, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	FindUsers(ctx context.Context, query string) ([]*entity.User, error)
}

type userUseCase struct {
	userRepo persistent.UserRepository
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, m *metrics.Metrics, logger *logger.Logger) UserUseCase {
	return &userUseCase{
		userRepo: userRepo,
		metrics:  m,
		logger:   logger,
	}
}

func (uc *userUseCase) CreateUser(ctx context.Context, firstName, lastName, email string) (string, error) {
	user := &entity.User{
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		AccountStatus: entity.AccountStatusNew,
	}

	if err := uc.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return "", err
		}
		uc.logger.Error("Failed to create user: %v", err)
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	uc.metrics.UserRegistered()
	uc.logger.Info("Created user %s", user.ID)
	return user.ID, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (uc *userUseCase) FindUsers(ctx context.Context, query string) ([]*entity.User, error) {
	users, err := uc.userRepo.Search(ctx, query)
	if err != nil {
		uc.logger.Error("Failed to search users: %v", err)
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	if users == nil {
		users = []*entity.User{}
	}
	return users, nil
}
