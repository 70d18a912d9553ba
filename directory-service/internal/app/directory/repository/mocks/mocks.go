package mocks

import (
	"context"

	"biashara/directory-service/internal/app/directory/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository мок для CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEntityRepository мок для EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Create(ctx context.Context, e *entity.Entity) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEntityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entity), args.Error(1)
}

func (m *MockEntityRepository) GetWithCategory(ctx context.Context, id uuid.UUID) (*entity.EntityWithCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EntityWithCategory), args.Error(1)
}

func (m *MockEntityRepository) GetAllWithCategories(ctx context.Context) ([]entity.EntityWithCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EntityWithCategory), args.Error(1)
}

func (m *MockEntityRepository) Update(ctx context.Context, e *entity.Entity) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEntityRepository) UpdateRating(ctx context.Context, id uuid.UUID, score float64, totalReviews int) error {
	args := m.Called(ctx, id, score, totalReviews)
	return args.Error(0)
}

func (m *MockEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDirectoryCache мок для util.DirectoryCache
type MockDirectoryCache struct {
	mock.Mock
}

func (m *MockDirectoryCache) SetCategories(ctx context.Context, categories []entity.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockDirectoryCache) GetCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockDirectoryCache) DeleteCategories(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDirectoryCache) SetEntities(ctx context.Context, entities []entity.EntityWithCategory) error {
	args := m.Called(ctx, entities)
	return args.Error(0)
}

func (m *MockDirectoryCache) GetEntities(ctx context.Context) ([]entity.EntityWithCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.EntityWithCategory), args.Error(1)
}

func (m *MockDirectoryCache) DeleteEntities(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDirectoryCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
