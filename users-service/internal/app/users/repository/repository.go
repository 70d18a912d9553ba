package repository

import (
	"context"

	"biashara/users-service/internal/app/users/entity"
)

// UserRepository определяет методы для работы с профилями в MongoDB
type UserRepository interface {
	// Upsert создает или обновляет профиль по его ID
	Upsert(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
