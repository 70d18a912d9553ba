package repository

import (
	"context"
	"time"

	"biashara/reviews-service/internal/app/reviews/entity"
)

// ReviewRepository определяет методы для работы с отзывами в MongoDB
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByEntityID(ctx context.Context, entityID string) ([]entity.Review, error)
	GetPublishedByEntityID(ctx context.Context, entityID string) ([]entity.Review, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Review, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	CountFlaggedByUserID(ctx context.Context, userID string) (int64, error)
	// MarkChecked фиксирует безопасный вердикт: очищает флаги и ставит отметку
	// времени проверки, статус не трогает
	MarkChecked(ctx context.Context, id string, checkedAt time.Time) error
	// Flag переводит отзыв в pending с сохранением флагов модерации
	Flag(ctx context.Context, id string, flags []string, checkedAt time.Time) error
	SetStatus(ctx context.Context, id string, status string) error
}
