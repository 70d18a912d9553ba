package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"biashara/directory-service/internal/app/directory/entity"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesCacheKey = "directory:categories:all"
	entitiesCacheKey   = "directory:entities:all"

	// Категории меняются редко, список бизнесов содержит рейтинги,
	// которые перезаписывает агрегатор, поэтому живет заметно меньше
	categoriesTTL = time.Hour
	entitiesTTL   = 5 * time.Minute
)

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetCategories(ctx context.Context, categories []entity.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	if err := r.client.Set(ctx, categoriesCacheKey, data, categoriesTTL).Err(); err != nil {
		return fmt.Errorf("failed to set categories in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetCategories(ctx context.Context) ([]entity.Category, error) {
	data, err := r.client.Get(ctx, categoriesCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get categories from cache: %w", err)
	}

	var categories []entity.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	return categories, nil
}

func (r *RedisClient) DeleteCategories(ctx context.Context) error {
	if err := r.client.Del(ctx, categoriesCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete categories from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) SetEntities(ctx context.Context, entities []entity.EntityWithCategory) error {
	data, err := json.Marshal(entities)
	if err != nil {
		return fmt.Errorf("failed to marshal entities: %w", err)
	}

	if err := r.client.Set(ctx, entitiesCacheKey, data, entitiesTTL).Err(); err != nil {
		return fmt.Errorf("failed to set entities in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetEntities(ctx context.Context) ([]entity.EntityWithCategory, error) {
	data, err := r.client.Get(ctx, entitiesCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entities from cache: %w", err)
	}

	var entities []entity.EntityWithCategory
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
	}

	return entities, nil
}

func (r *RedisClient) DeleteEntities(ctx context.Context) error {
	if err := r.client.Del(ctx, entitiesCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete entities from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
