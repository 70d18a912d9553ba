package service

import (
	"context"
	"fmt"
	"math"

	"biashara/pkg/logger"
	"biashara/reviews-service/internal/app/reviews/repository"

	"biashara/reviews-service/internal/app/reviews/entity"
)

// RatingService пересчитывает агрегированный рейтинг бизнеса.
// Чистый recompute-and-overwrite без инкрементального состояния:
// повторные и конкурирующие вызовы сходятся к одному результату,
// блокировки не нужны (последняя запись побеждает)
type RatingService struct {
	reviewRepo   repository.ReviewRepository
	entityClient EntityRatingClient
}

// NewRatingService создает новый сервис рейтинга
func NewRatingService(reviewRepo repository.ReviewRepository, entityClient EntityRatingClient) *RatingService {
	return &RatingService{
		reviewRepo:   reviewRepo,
		entityClient: entityClient,
	}
}

// CalculateRatings считает средний рейтинг по published отзывам бизнеса,
// округляет до одного знака и перезаписывает счёт на записи бизнеса.
// Ноль published отзывов дает {0, 0}
func (s *RatingService) CalculateRatings(ctx context.Context, entityID string) (*entity.RatingSummary, error) {
	reviews, err := s.reviewRepo.GetPublishedByEntityID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get published reviews: %w", err)
	}

	summary := &entity.RatingSummary{}

	if len(reviews) > 0 {
		var total int
		for _, review := range reviews {
			total += review.Rating
		}

		average := float64(total) / float64(len(reviews))
		summary.AverageRating = math.Round(average*10) / 10
		summary.TotalReviews = len(reviews)
	}

	if err := s.entityClient.UpdateRating(ctx, entityID, summary.AverageRating, summary.TotalReviews); err != nil {
		return nil, fmt.Errorf("failed to update entity rating: %w", err)
	}

	logger.Info().
		Str("entity_id", entityID).
		Float64("average_rating", summary.AverageRating).
		Int("total_reviews", summary.TotalReviews).
		Msg("Entity rating recalculated")

	return summary, nil
}
