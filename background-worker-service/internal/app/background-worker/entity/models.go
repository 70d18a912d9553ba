package entity

import (
	"time"

	"github.com/google/uuid"
)

// Entity строка таблицы entities в Directory Service
// Воркер перезаписывает только агрегированный рейтинг
type Entity struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	BiasharaScore float64   `json:"biashara_score" gorm:"default:0"`
	TotalReviews  int       `json:"total_reviews" gorm:"default:0"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Entity) TableName() string {
	return "entities"
}

// Review проекция документа отзыва из MongoDB Reviews Service
// Воркеру нужны только оценка и статус модерации
type Review struct {
	ID               string `bson:"_id"`
	EntityID         string `bson:"entity_id"`
	Rating           int    `bson:"rating"`
	ModerationStatus string `bson:"moderation_status"`
}

// ReviewEvent событие из топика review_events
type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED | REVIEW_MODERATED
	ReviewID  string    `json:"review_id"`
	EntityID  string    `json:"entity_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// RatingSnapshot последний записанный рейтинг бизнеса
// Хранится в Redis с TTL, чтобы пропускать записи без изменений
type RatingSnapshot struct {
	EntityID      string    `json:"entity_id"`
	BiasharaScore float64   `json:"biashara_score"`
	TotalReviews  int       `json:"total_reviews"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	EventTypeReviewCreated   = "REVIEW_CREATED"
	EventTypeReviewModerated = "REVIEW_MODERATED"
)

const (
	StatusPublished = "published"
)

const (
	RedisKeyPrefixRating = "ratings:" // ratings:<entity_id>
)

func GetRedisKeyForRating(entityID string) string {
	return RedisKeyPrefixRating + entityID
}
