package service

import (
	"context"

	"biashara/directory-service/internal/app/directory/entity"

	"github.com/google/uuid"
)

type DirectoryServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateEntity(ctx context.Context, req *entity.CreateEntityRequest) (*entity.Entity, error)
	GetEntity(ctx context.Context, id uuid.UUID) (*entity.EntityWithCategory, error)
	GetAllEntities(ctx context.Context) ([]entity.EntityWithCategory, error)
	UpdateEntity(ctx context.Context, id uuid.UUID, req *entity.UpdateEntityRequest) (*entity.Entity, error)
	UpdateEntityRating(ctx context.Context, id uuid.UUID, score float64, totalReviews int) error
	DeleteEntity(ctx context.Context, id uuid.UUID) error
}
