package repository

import (
	"context"
	"errors"
	"time"

	"biashara/directory-service/internal/app/directory/entity"

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

// Create создает новый бизнес
func (r *entityRepository) Create(ctx context.Context, e *entity.Entity) error {
	result := r.db.WithContext(ctx).Create(e)
	return result.Error
}

// GetByID получает бизнес по ID
func (r *entityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entity, error) {
	var e entity.Entity
	result := r.db.WithContext(ctx).First(&e, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, result.Error
	}

	return &e, nil
}

// GetWithCategory получает бизнес с информацией о категории
func (r *entityRepository) GetWithCategory(ctx context.Context, id uuid.UUID) (*entity.EntityWithCategory, error) {
	var e entity.Entity
	result := r.db.WithContext(ctx).Preload("Category").First(&e, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, result.Error
	}

	ewc := &entity.EntityWithCategory{Entity: e}
	if e.Category != nil {
		ewc.Category = *e.Category
	}

	return ewc, nil
}

// GetAllWithCategories получает все бизнесы с информацией о категориях
func (r *entityRepository) GetAllWithCategories(ctx context.Context) ([]entity.EntityWithCategory, error) {
	var list []entity.Entity
	result := r.db.WithContext(ctx).Preload("Category").Order("created_at DESC").Find(&list)

	if result.Error != nil {
		return nil, result.Error
	}

	var withCategories []entity.EntityWithCategory
	for _, e := range list {
		ewc := entity.EntityWithCategory{Entity: e}
		if e.Category != nil {
			ewc.Category = *e.Category
		}
		withCategories = append(withCategories, ewc)
	}

	return withCategories, nil
}

// Update обновляет описательные поля бизнеса
// Рейтинг не трогает: он перезаписывается только через UpdateRating
func (r *entityRepository) Update(ctx context.Context, e *entity.Entity) error {
	result := r.db.WithContext(ctx).Model(&entity.Entity{}).Where("id = ?", e.ID).Updates(map[string]interface{}{
		"name":        e.Name,
		"description": e.Description,
		"category_id": e.CategoryID,
		"address":     e.Address,
		"phone":       e.Phone,
		"photo_url":   e.PhotoURL,
		"updated_at":  time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEntityNotFound
	}

	return nil
}

// UpdateRating перезаписывает агрегированный рейтинг бизнеса.
// Чистая перезапись без чтения: конкурирующие вызовы агрегатора безопасны,
// побеждает последняя запись
func (r *entityRepository) UpdateRating(ctx context.Context, id uuid.UUID, score float64, totalReviews int) error {
	result := r.db.WithContext(ctx).Model(&entity.Entity{}).Where("id = ?", id).Updates(map[string]interface{}{
		"biashara_score": score,
		"total_reviews":  totalReviews,
		"updated_at":     time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEntityNotFound
	}

	return nil
}

// Delete удаляет бизнес
func (r *entityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Entity{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEntityNotFound
	}

	return nil
}
