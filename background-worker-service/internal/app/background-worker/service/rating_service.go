package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"biashara/background-worker-service/internal/app/background-worker/entity"
	"biashara/background-worker-service/internal/app/background-worker/repository"

	"github.com/google/uuid"
	"biashara/pkg/logger"
)

// RatingRecalculationService пересчитывает агрегированные рейтинги бизнесов
type RatingRecalculationService struct {
	entityRepo   repository.EntityRepository
	reviewRepo   repository.ReviewRepository
	snapshotRepo repository.RatingSnapshotRepository
}

// NewRatingRecalculationService создает новый сервис пересчета рейтингов
func NewRatingRecalculationService(
	entityRepo repository.EntityRepository,
	reviewRepo repository.ReviewRepository,
	snapshotRepo repository.RatingSnapshotRepository,
) *RatingRecalculationService {
	return &RatingRecalculationService{
		entityRepo:   entityRepo,
		reviewRepo:   reviewRepo,
		snapshotRepo: snapshotRepo,
	}
}

// RecalculateEntity пересчитывает рейтинг бизнеса по опубликованным отзывам
func (s *RatingRecalculationService) RecalculateEntity(ctx context.Context, entityID uuid.UUID) error {
	ratings, err := s.reviewRepo.GetPublishedRatings(ctx, entityID.String())
	if err != nil {
		return fmt.Errorf("failed to get published ratings: %w", err)
	}

	score := 0.0
	totalReviews := len(ratings)
	if totalReviews > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		avg := float64(sum) / float64(totalReviews)
		score = math.Round(avg*10) / 10
	}

	snapshot, err := s.snapshotRepo.Get(ctx, entityID.String())
	if err != nil {
		logger.Warn().Err(err).Str("entity_id", entityID.String()).Msg("Failed to get rating snapshot")
	}
	if snapshot != nil && snapshot.BiasharaScore == score && snapshot.TotalReviews == totalReviews {
		logger.Debug().
			Str("entity_id", entityID.String()).
			Float64("score", score).
			Int("total_reviews", totalReviews).
			Msg("Rating unchanged, skipping update")
		return nil
	}

	if err := s.entityRepo.UpdateRating(ctx, entityID, score, totalReviews); err != nil {
		if errors.Is(err, repository.ErrEntityNotFound) {
			logger.Warn().
				Str("entity_id", entityID.String()).
				Msg("Entity not found during rating recalculation, skipping")
			return nil
		}
		return fmt.Errorf("failed to update entity rating: %w", err)
	}

	if err := s.snapshotRepo.Set(ctx, &entity.RatingSnapshot{
		EntityID:      entityID.String(),
		BiasharaScore: score,
		TotalReviews:  totalReviews,
		UpdatedAt:     time.Now(),
	}); err != nil {
		logger.Warn().Err(err).Str("entity_id", entityID.String()).Msg("Failed to save rating snapshot")
	}

	logger.Info().
		Str("entity_id", entityID.String()).
		Float64("score", score).
		Int("total_reviews", totalReviews).
		Msg("Entity rating recalculated")

	return nil
}

// RecalculateAll пересчитывает рейтинги всех бизнесов
func (s *RatingRecalculationService) RecalculateAll(ctx context.Context) error {
	ids, err := s.entityRepo.GetAllIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get entity ids: %w", err)
	}

	var failed int
	for _, id := range ids {
		if err := s.RecalculateEntity(ctx, id); err != nil {
			logger.Error().Err(err).Str("entity_id", id.String()).Msg("Failed to recalculate entity rating")
			failed++
		}
	}

	logger.Info().
		Int("total", len(ids)).
		Int("failed", failed).
		Msg("Full rating recalculation completed")

	if failed > 0 {
		return fmt.Errorf("failed to recalculate %d of %d entities", failed, len(ids))
	}
	return nil
}

// ProcessReviewEvent обрабатывает событие отзыва и запускает пересчет рейтинга
func (s *RatingRecalculationService) ProcessReviewEvent(ctx context.Context, event *entity.ReviewEvent) error {
	if event.EventType != entity.EventTypeReviewCreated && event.EventType != entity.EventTypeReviewModerated {
		logger.Warn().
			Str("event_type", event.EventType).
			Str("review_id", event.ReviewID).
			Msg("Unknown review event type, skipping")
		return nil
	}

	entityID, err := uuid.Parse(event.EntityID)
	if err != nil {
		logger.Warn().
			Str("entity_id", event.EntityID).
			Str("review_id", event.ReviewID).
			Msg("Invalid entity id in review event, skipping")
		return nil
	}

	return s.RecalculateEntity(ctx, entityID)
}
