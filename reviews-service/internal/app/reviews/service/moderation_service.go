package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"biashara/pkg/logger"
	"biashara/pkg/metrics"
	"biashara/reviews-service/internal/app/reviews/entity"
	"biashara/reviews-service/internal/app/reviews/infrastructure"
	"biashara/reviews-service/internal/app/reviews/repository"
)

// Фиксированное описание политики, уходит в prompt классификатора
const moderationPolicy = `- No hate speech, discrimination, or harassment
- No spam or promotional content
- No fake or misleading information
- No personal attacks
- No profanity or offensive language
- Must be relevant to the business`

// ModerationService - фоновый worker модерации отзывов.
// Запускается один раз на созданный отзыв, после того как вызывающий
// уже получил ответ. Любая ошибка здесь логируется и поглощается:
// сбой модерации никогда не виден пользователю и не откатывает отзыв
type ModerationService struct {
	reviewRepo    repository.ReviewRepository
	textGen       TextGenerator
	ratings       RatingCalculator
	kafkaProducer infrastructure.MessagePublisher
}

// NewModerationService создает новый сервис модерации
func NewModerationService(
	reviewRepo repository.ReviewRepository,
	textGen TextGenerator,
	ratings RatingCalculator,
	kafkaProducer infrastructure.MessagePublisher,
) *ModerationService {
	return &ModerationService{
		reviewRepo:    reviewRepo,
		textGen:       textGen,
		ratings:       ratings,
		kafkaProducer: kafkaProducer,
	}
}

// Moderate классифицирует текст отзыва и обновляет его статус
// 1. Собирает историю автора (только контекст prompt, не жесткий фильтр)
// 2. Запрашивает классификацию у генератора текста
// 3. Парсит вердикт; непарсибельный ответ = safe (fail-open)
// 4. unsafe с флагами -> pending, иначе очистка флагов; отметка времени
// 5. Безусловно запускает пересчёт рейтинга бизнеса
func (m *ModerationService) Moderate(ctx context.Context, review *entity.Review) {
	start := time.Now()
	defer func() {
		metrics.ModerationDuration.WithLabelValues("reviews-service").Observe(time.Since(start).Seconds())
	}()

	totalReviews, err := m.reviewRepo.CountByUserID(ctx, review.UserID)
	if err != nil {
		// История - только контекст, без нее модерация продолжается
		logger.Warn().Err(err).Str("user_id", review.UserID).Msg("Failed to count user reviews")
		totalReviews = 0
	}

	flaggedReviews, err := m.reviewRepo.CountFlaggedByUserID(ctx, review.UserID)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", review.UserID).Msg("Failed to count flagged reviews")
		flaggedReviews = 0
	}

	prompt := buildModerationPrompt(review.ReviewText, totalReviews, flaggedReviews)

	raw, err := m.textGen.GenerateText(ctx, prompt)
	if err != nil {
		// Вызов генерации не состоялся: отзыв остается published
		// с незаполненной отметкой проверки, пользователь этого не видит
		logger.Error().Err(err).
			Str("review_id", review.ID).
			Msg("Moderation text generation failed")
		metrics.RecordModerationFailure("reviews-service", "generate")
		return
	}

	result := parseModerationResponse(raw)
	if result.Verdict == entity.VerdictUnparseable {
		logger.Error().
			Str("review_id", review.ID).
			Str("response", raw).
			Msg("Failed to parse moderation response, failing open")
	}

	metrics.RecordModerationVerdict("reviews-service", result.Verdict.String())

	checkedAt := time.Now().UTC()

	if result.Verdict == entity.VerdictUnsafe && len(result.Flags) > 0 {
		if err := m.reviewRepo.Flag(ctx, review.ID, result.Flags, checkedAt); err != nil {
			logger.Error().Err(err).Str("review_id", review.ID).Msg("Failed to flag review")
			metrics.RecordModerationFailure("reviews-service", "update")
			return
		}

		logger.Info().
			Str("review_id", review.ID).
			Strs("flags", result.Flags).
			Msg("Review flagged for moderation")
	} else {
		if err := m.reviewRepo.MarkChecked(ctx, review.ID, checkedAt); err != nil {
			logger.Error().Err(err).Str("review_id", review.ID).Msg("Failed to mark review checked")
			metrics.RecordModerationFailure("reviews-service", "update")
			return
		}
	}

	// Пересчёт выполняется независимо от вердикта
	if _, err := m.ratings.CalculateRatings(ctx, review.EntityID); err != nil {
		logger.Error().Err(err).
			Str("entity_id", review.EntityID).
			Msg("Failed to recalculate rating after moderation")
		metrics.RecordModerationFailure("reviews-service", "aggregate")
	} else {
		metrics.RecordRatingRecompute("reviews-service", "moderation")
	}

	m.publishModeratedEvent(ctx, review)
}

// publishModeratedEvent отправляет REVIEW_MODERATED в Kafka (best-effort)
func (m *ModerationService) publishModeratedEvent(ctx context.Context, review *entity.Review) {
	event := entity.ReviewEvent{
		EventType: entity.EventTypeReviewModerated,
		ReviewID:  review.ID,
		EntityID:  review.EntityID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: time.Now().UTC(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal moderated event")
		return
	}

	if err := m.kafkaProducer.PublishMessage(ctx, event.EntityID, eventData); err != nil {
		logger.Warn().Err(err).
			Str("review_id", review.ID).
			Msg("Failed to publish moderated event")
	}
}

// buildModerationPrompt собирает prompt классификатора
// Модель обязана ответить строгим JSON {isSafe, flags}
func buildModerationPrompt(reviewText string, totalReviews, flaggedReviews int64) string {
	return fmt.Sprintf(`Analyze this review for policy violations. Return a JSON object with:
- isSafe: boolean (true if the review is safe, false if it violates policies)
- flags: array of strings (reasons if unsafe, empty if safe)

Review policies:
%s

Review text: %q
User history: %d total reviews, %d previously flagged

Respond ONLY with valid JSON, no additional text.`, moderationPolicy, reviewText, totalReviews, flaggedReviews)
}

// parseModerationResponse разбирает ответ модели в размеченный вердикт
// Markdown-ограждения вокруг JSON срезаются, любой другой мусор - Unparseable
func parseModerationResponse(raw string) entity.ModerationResult {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload struct {
		IsSafe bool     `json:"isSafe"`
		Flags  []string `json:"flags"`
	}

	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return entity.ModerationResult{Verdict: entity.VerdictUnparseable}
	}

	if !payload.IsSafe {
		return entity.ModerationResult{
			Verdict: entity.VerdictUnsafe,
			Flags:   payload.Flags,
		}
	}

	return entity.ModerationResult{Verdict: entity.VerdictSafe}
}
