package service

import (
	"context"

	"biashara/reviews-service/internal/app/reviews/entity"
)

// TextGenerator - внешний сервис генерации текста (Gemini)
// Принимает prompt, возвращает сырой текст ответа модели
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// UserProfileClient - клиент Users Service для профиля автора отзыва
type UserProfileClient interface {
	GetUser(ctx context.Context, userID string) (*entity.UserProfile, error)
}

// EntityRatingClient - клиент Directory Service для записи рейтинга бизнеса
type EntityRatingClient interface {
	UpdateRating(ctx context.Context, entityID string, score float64, totalReviews int) error
}

// ReviewModerator - фоновая модерация отзыва.
// Ошибок не возвращает: worker поглощает их сам, вызывающий не ждет результата
type ReviewModerator interface {
	Moderate(ctx context.Context, review *entity.Review)
}

// RatingCalculator - пересчёт агрегированного рейтинга бизнеса
type RatingCalculator interface {
	CalculateRatings(ctx context.Context, entityID string) (*entity.RatingSummary, error)
}
