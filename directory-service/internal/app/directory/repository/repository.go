package repository

import (
	"context"

	"biashara/directory-service/internal/app/directory/entity"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EntityRepository interface {
	Create(ctx context.Context, e *entity.Entity) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Entity, error)
	GetWithCategory(ctx context.Context, id uuid.UUID) (*entity.EntityWithCategory, error)
	GetAllWithCategories(ctx context.Context) ([]entity.EntityWithCategory, error)
	Update(ctx context.Context, e *entity.Entity) error
	UpdateRating(ctx context.Context, id uuid.UUID, score float64, totalReviews int) error
	Delete(ctx context.Context, id uuid.UUID) error
}
