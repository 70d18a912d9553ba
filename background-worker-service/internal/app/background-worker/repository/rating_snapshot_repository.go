package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"biashara/background-worker-service/internal/app/background-worker/entity"

	"github.com/redis/go-redis/v9"
)

type ratingSnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingSnapshotRepository создает новый репозиторий снапшотов рейтинга
func NewRatingSnapshotRepository(client *redis.Client, ttl time.Duration) RatingSnapshotRepository {
	return &ratingSnapshotRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get получает снапшот рейтинга из Redis
// Отсутствие снапшота это nil без ошибки: воркер тогда пишет безусловно
func (r *ratingSnapshotRepository) Get(ctx context.Context, entityID string) (*entity.RatingSnapshot, error) {
	key := entity.GetRedisKeyForRating(entityID)

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rating snapshot from redis: %w", err)
	}

	var snapshot entity.RatingSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rating snapshot: %w", err)
	}

	return &snapshot, nil
}

// Set сохраняет снапшот рейтинга в Redis с TTL
func (r *ratingSnapshotRepository) Set(ctx context.Context, snapshot *entity.RatingSnapshot) error {
	key := entity.GetRedisKeyForRating(snapshot.EntityID)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal rating snapshot: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set rating snapshot in redis: %w", err)
	}

	return nil
}
