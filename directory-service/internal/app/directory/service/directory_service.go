package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biashara/directory-service/internal/app/directory/entity"
	"biashara/directory-service/internal/app/directory/repository"
	"biashara/directory-service/internal/app/directory/util"
	"biashara/pkg/logger"
	"biashara/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has entities")
	ErrEntityNotFound   = errors.New("entity not found")
)

// DirectoryService обрабатывает бизнес-логику справочника бизнесов
// Координирует работу репозиториев и Redis кеша
type DirectoryService struct {
	categoryRepo repository.CategoryRepository
	entityRepo   repository.EntityRepository
	cache        util.DirectoryCache
}

// NewDirectoryService создает новый сервис справочника
func NewDirectoryService(
	categoryRepo repository.CategoryRepository,
	entityRepo repository.EntityRepository,
	cache util.DirectoryCache,
) *DirectoryService {
	return &DirectoryService{
		categoryRepo: categoryRepo,
		entityRepo:   entityRepo,
		cache:        cache,
	}
}

// === CATEGORIES ===

// CreateCategory создает новую категорию и инвалидирует кеш
func (s *DirectoryService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	// Категория уже создана, проблемы с кешем не критичны
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}

	return category, nil
}

// GetCategory получает категорию по ID
func (s *DirectoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// GetAllCategories получает все категории с кешированием в Redis
// Сначала проверяет кеш, при промахе загружает из БД и кеширует
func (s *DirectoryService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err == nil && len(categories) > 0 {
		metrics.RecordCacheHit("directory-service", "directory:categories")
		return categories, nil
	}
	metrics.RecordCacheMiss("directory-service", "directory:categories")

	categories, err = s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}

	return categories, nil
}

// UpdateCategory обновляет категорию и инвалидирует кеш
func (s *DirectoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = req.Name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}

	return category, nil
}

// DeleteCategory удаляет категорию и инвалидирует кеш
func (s *DirectoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		if errors.Is(err, repository.ErrCategoryHasEntities) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}

	return nil
}

// === ENTITIES ===

// CreateEntity создает новый бизнес
// Проверяет существование категории перед созданием
func (s *DirectoryService) CreateEntity(ctx context.Context, req *entity.CreateEntityRequest) (*entity.Entity, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	now := time.Now()
	e := &entity.Entity{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Address:     req.Address,
		Phone:       req.Phone,
		PhotoURL:    req.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.entityRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}

	if err := s.cache.DeleteEntities(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate entities cache")
	}

	return e, nil
}

// GetEntity получает бизнес по ID с информацией о категории
func (s *DirectoryService) GetEntity(ctx context.Context, id uuid.UUID) (*entity.EntityWithCategory, error) {
	e, err := s.entityRepo.GetWithCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return e, nil
}

// GetAllEntities получает все бизнесы с информацией о категориях
// Список кешируется в Redis, кеш инвалидируется при любой записи
func (s *DirectoryService) GetAllEntities(ctx context.Context) ([]entity.EntityWithCategory, error) {
	entities, err := s.cache.GetEntities(ctx)
	if err == nil && len(entities) > 0 {
		metrics.RecordCacheHit("directory-service", "directory:entities")
		return entities, nil
	}
	metrics.RecordCacheMiss("directory-service", "directory:entities")

	entities, err = s.entityRepo.GetAllWithCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get entities: %w", err)
	}

	if err := s.cache.SetEntities(ctx, entities); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache entities")
	}

	return entities, nil
}

// UpdateEntity обновляет описательные поля бизнеса
// Частичное обновление: пустые поля запроса не трогают текущие значения
func (s *DirectoryService) UpdateEntity(ctx context.Context, id uuid.UUID, req *entity.UpdateEntityRequest) (*entity.Entity, error) {
	e, err := s.entityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	if req.Name != "" {
		e.Name = req.Name
	}
	if req.Description != "" {
		e.Description = req.Description
	}
	if req.Address != "" {
		e.Address = req.Address
	}
	if req.Phone != "" {
		e.Phone = req.Phone
	}
	if req.PhotoURL != "" {
		e.PhotoURL = req.PhotoURL
	}
	if req.CategoryID != uuid.Nil {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		e.CategoryID = req.CategoryID
	}

	if err := s.entityRepo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update entity: %w", err)
	}

	if err := s.cache.DeleteEntities(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate entities cache")
	}

	return e, nil
}

// UpdateEntityRating перезаписывает агрегированный рейтинг бизнеса.
// Вызывается агрегатором рейтинга и фоновым воркером; чистая перезапись,
// поэтому повторные и конкурирующие вызовы дают одинаковый результат
func (s *DirectoryService) UpdateEntityRating(ctx context.Context, id uuid.UUID, score float64, totalReviews int) error {
	if err := s.entityRepo.UpdateRating(ctx, id, score, totalReviews); err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return ErrEntityNotFound
		}
		return fmt.Errorf("failed to update entity rating: %w", err)
	}

	if err := s.cache.DeleteEntities(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate entities cache")
	}

	logger.Info().
		Str("entity_id", id.String()).
		Float64("biashara_score", score).
		Int("total_reviews", totalReviews).
		Msg("Entity rating updated")

	return nil
}

// DeleteEntity удаляет бизнес
func (s *DirectoryService) DeleteEntity(ctx context.Context, id uuid.UUID) error {
	if err := s.entityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			return ErrEntityNotFound
		}
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	if err := s.cache.DeleteEntities(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate entities cache")
	}

	return nil
}
