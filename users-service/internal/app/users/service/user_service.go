package service

import (
	"context"
	"errors"
	"fmt"

	"biashara/pkg/logger"
	"biashara/users-service/internal/app/users/entity"
	"biashara/users-service/internal/app/users/repository"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrUserNotFound = errors.New("user not found")
)

// UserService обрабатывает синхронизацию и чтение профилей
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис профилей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// SyncUser создает или обновляет профиль вызывающего
// ID берется из проверенного токена, не из тела запроса
func (s *UserService) SyncUser(ctx context.Context, userID string, req *entity.SyncUserRequest) (*entity.User, error) {
	user := &entity.User{
		ID:     userID,
		Email:  req.Email,
		Name:   req.Name,
		Avatar: req.Avatar,
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}

	synced, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load synced user: %w", err)
	}

	logger.Info().
		Str("user_id", userID).
		Msg("User profile synced")

	return synced, nil
}

// GetUser получает профиль по ID
func (s *UserService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
