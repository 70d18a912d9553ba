package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biashara/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEntityNotFound = errors.New("entity not found")
)

type entityRepository struct {
	db *gorm.DB
}

// NewEntityRepository создает новый репозиторий бизнесов
func NewEntityRepository(db *gorm.DB) EntityRepository {
	return &entityRepository{db: db}
}

// UpdateRating перезаписывает агрегированный рейтинг бизнеса.
// Чистая перезапись: конкурирующий агрегатор Reviews Service пишет
// те же вычисленные значения, побеждает последняя запись
func (r *entityRepository) UpdateRating(ctx context.Context, id uuid.UUID, score float64, totalReviews int) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Entity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"biashara_score": score,
			"total_reviews":  totalReviews,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update entity rating: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrEntityNotFound
	}

	return nil
}

// GetAllIDs возвращает ID всех бизнесов для полной сверки по cron
func (r *entityRepository) GetAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).Model(&entity.Entity{}).Pluck("id", &ids)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to get entity ids: %w", result.Error)
	}

	return ids, nil
}
