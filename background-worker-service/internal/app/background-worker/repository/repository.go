package repository

import (
	"context"

	"biashara/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
)

// EntityRepository работает с таблицей entities в PostgreSQL
type EntityRepository interface {
	// UpdateRating перезаписывает агрегированный рейтинг бизнеса
	UpdateRating(ctx context.Context, id uuid.UUID, score float64, totalReviews int) error
	// GetAllIDs возвращает ID всех бизнесов для полной сверки
	GetAllIDs(ctx context.Context) ([]uuid.UUID, error)
}

// ReviewRepository читает отзывы из MongoDB Reviews Service
type ReviewRepository interface {
	// GetPublishedRatings возвращает оценки всех published отзывов бизнеса
	GetPublishedRatings(ctx context.Context, entityID string) ([]int, error)
}

// RatingSnapshotRepository хранит последние записанные рейтинги в Redis
type RatingSnapshotRepository interface {
	// Get возвращает снапшот или nil, если его нет либо TTL истек
	Get(ctx context.Context, entityID string) (*entity.RatingSnapshot, error)
	// Set сохраняет снапшот с TTL
	Set(ctx context.Context, snapshot *entity.RatingSnapshot) error
}
