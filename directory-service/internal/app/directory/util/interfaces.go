package util

import (
	"context"

	"biashara/directory-service/internal/app/directory/entity"
)

// DirectoryCache интерфейс для работы с Redis кешем справочника
// Используется для dependency injection и упрощения тестирования
type DirectoryCache interface {
	SetCategories(ctx context.Context, categories []entity.Category) error
	GetCategories(ctx context.Context) ([]entity.Category, error)
	DeleteCategories(ctx context.Context) error

	SetEntities(ctx context.Context, entities []entity.EntityWithCategory) error
	GetEntities(ctx context.Context) ([]entity.EntityWithCategory, error)
	DeleteEntities(ctx context.Context) error

	Close() error
}
