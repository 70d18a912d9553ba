package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"biashara/pkg/logger"
	"biashara/pkg/metrics"
	"biashara/reviews-service/internal/app/reviews/entity"
	"biashara/reviews-service/internal/app/reviews/infrastructure"
	infrahttp "biashara/reviews-service/internal/app/reviews/infrastructure/http"
	"biashara/reviews-service/internal/app/reviews/repository"
)

const anonymousUserName = "Anonymous"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrReviewNotFound = errors.New("review not found")
)

// ReviewService обрабатывает прием отзывов
// Координирует репозиторий, Users Service, Kafka и фоновую модерацию
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	users         UserProfileClient
	kafkaProducer infrastructure.MessagePublisher
	moderator     ReviewModerator
	ratings       RatingCalculator
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	users UserProfileClient,
	kafkaProducer infrastructure.MessagePublisher,
	moderator ReviewModerator,
	ratings RatingCalculator,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		users:         users,
		kafkaProducer: kafkaProducer,
		moderator:     moderator,
		ratings:       ratings,
	}
}

// SubmitReview создает новый отзыв
// 1. Резолвит имя и аватар автора из Users Service (fallback "Anonymous")
// 2. Сохраняет отзыв со статусом published и пустыми флагами
// 3. Отправляет событие REVIEW_CREATED в Kafka (best-effort)
// 4. Запускает фоновую модерацию отдельной горутиной, не дожидаясь ее
// Ответ вызывающему не включает стоимость модерации и пересчёта рейтинга
func (s *ReviewService) SubmitReview(ctx context.Context, userID string, req *entity.SubmitReviewRequest) (*entity.Review, error) {
	userName, userAvatar := s.resolveAuthor(ctx, userID)

	photoURLs := req.PhotoURLs
	if photoURLs == nil {
		photoURLs = []string{}
	}

	now := time.Now().UTC()

	review := &entity.Review{
		// Временная метка + ID автора достаточно уникальны на этом масштабе
		ID:               fmt.Sprintf("review_%d_%s", now.UnixMilli(), userID),
		EntityID:         req.EntityID,
		UserID:           userID,
		UserName:         userName,
		UserAvatar:       userAvatar,
		Rating:           req.Rating,
		ReviewText:       req.ReviewText,
		DateOfExperience: req.DateOfExperience,
		PhotoURLs:        photoURLs,
		IsVerified:       true,
		ModerationStatus: entity.StatusPublished,
		ModerationFlags:  []string{},
		CreatedAt:        now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.publishReviewEvent(ctx, entity.EventTypeReviewCreated, review)

	// Модерация запускается fire-and-forget: у нее свой контекст,
	// завершения никто не наблюдает, ошибки не доходят до вызывающего
	if s.moderator != nil {
		detached := *review
		go s.moderator.Moderate(context.Background(), &detached)
	}

	return review, nil
}

// GetReviewsByEntity получает published отзывы бизнеса
func (s *ReviewService) GetReviewsByEntity(ctx context.Context, entityID string) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetPublishedByEntityID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// GetUserReviews получает все отзывы пользователя
func (s *ReviewService) GetUserReviews(ctx context.Context, userID string) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reviews: %w", err)
	}

	return reviews, nil
}

// ModerateReview выполняет административное действие approve/hide
// Смена статуса меняет множество published отзывов, поэтому после нее
// рейтинг бизнеса пересчитывается (ошибку пересчёта доведет worker по событию)
func (s *ReviewService) ModerateReview(ctx context.Context, reviewID string, action string, adminID string) (string, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return "", ErrReviewNotFound
		}
		return "", fmt.Errorf("failed to get review: %w", err)
	}

	newStatus := entity.StatusHidden
	if action == "approve" {
		newStatus = entity.StatusPublished
	}

	if err := s.reviewRepo.SetStatus(ctx, reviewID, newStatus); err != nil {
		return "", fmt.Errorf("failed to set review status: %w", err)
	}

	logger.Info().
		Str("review_id", reviewID).
		Str("action", action).
		Str("admin_id", adminID).
		Msg("Review moderated by admin")

	if _, err := s.ratings.CalculateRatings(ctx, review.EntityID); err != nil {
		// Статус уже изменен, откатывать нечего: пересчёт догонит
		// reconciliation worker по событию REVIEW_MODERATED
		logger.Warn().Err(err).
			Str("entity_id", review.EntityID).
			Msg("Failed to recalculate rating after admin moderation")
	} else {
		metrics.RecordRatingRecompute("reviews-service", "admin")
	}

	review.ModerationStatus = newStatus
	s.publishReviewEvent(ctx, entity.EventTypeReviewModerated, review)

	return newStatus, nil
}

// resolveAuthor возвращает имя и аватар автора, по умолчанию "Anonymous"
func (s *ReviewService) resolveAuthor(ctx context.Context, userID string) (string, string) {
	profile, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, infrahttp.ErrUserNotFound) {
			logger.Warn().Err(err).
				Str("user_id", userID).
				Msg("Failed to resolve user profile, falling back to Anonymous")
		}
		return anonymousUserName, ""
	}

	if profile == nil || profile.Name == "" {
		return anonymousUserName, ""
	}

	return profile.Name, profile.Avatar
}

// publishReviewEvent отправляет событие об отзыве в Kafka
// Отзыв уже сохранен, проблемы с Kafka не критичны - логируем и продолжаем
func (s *ReviewService) publishReviewEvent(ctx context.Context, eventType string, review *entity.Review) {
	event := entity.ReviewEvent{
		EventType: eventType,
		ReviewID:  review.ID,
		EntityID:  review.EntityID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: time.Now().UTC(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal review event")
		return
	}

	// Ключ = EntityID: события одного бизнеса попадают в одну партицию
	if err := s.kafkaProducer.PublishMessage(ctx, event.EntityID, eventData); err != nil {
		logger.Warn().Err(err).
			Str("event_type", eventType).
			Str("review_id", review.ID).
			Msg("Failed to publish review event")
	}
}
