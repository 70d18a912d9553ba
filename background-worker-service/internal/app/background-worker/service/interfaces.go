package service

import (
	"context"

	"biashara/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
)

// RatingRecalculationServiceInterface определяет интерфейс пересчета рейтингов
type RatingRecalculationServiceInterface interface {
	// RecalculateEntity пересчитывает рейтинг одного бизнеса из набора отзывов
	RecalculateEntity(ctx context.Context, entityID uuid.UUID) error
	// RecalculateAll выполняет полную сверку рейтингов всех бизнесов
	RecalculateAll(ctx context.Context) error
	// ProcessReviewEvent обрабатывает событие отзыва из Kafka
	ProcessReviewEvent(ctx context.Context, event *entity.ReviewEvent) error
}
