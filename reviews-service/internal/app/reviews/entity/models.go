package entity

import (
	"time"
)

// Статусы модерации отзыва
// В агрегированный рейтинг входят только published отзывы
const (
	StatusPublished = "published"
	StatusPending   = "pending"
	StatusHidden    = "hidden"
)

// Типы событий для Kafka
const (
	EventTypeReviewCreated   = "REVIEW_CREATED"
	EventTypeReviewModerated = "REVIEW_MODERATED"
)

type Review struct {
	ID                  string     `json:"id" bson:"_id"`
	EntityID            string     `json:"entity_id" bson:"entity_id"` // UUID бизнеса из Directory Service
	UserID              string     `json:"user_id" bson:"user_id"`     // ID пользователя из токена
	UserName            string     `json:"user_name" bson:"user_name"`
	UserAvatar          string     `json:"user_avatar,omitempty" bson:"user_avatar,omitempty"`
	Rating              int        `json:"rating" bson:"rating"` // Оценка от 1 до 5
	ReviewText          string     `json:"review_text" bson:"review_text"`
	DateOfExperience    string     `json:"date_of_experience" bson:"date_of_experience"`
	PhotoURLs           []string   `json:"photo_urls" bson:"photo_urls"`
	IsVerified          bool       `json:"is_verified" bson:"is_verified"`
	Likes               int        `json:"likes" bson:"likes"`
	Reports             int        `json:"reports" bson:"reports"`
	ModerationStatus    string     `json:"moderation_status" bson:"moderation_status"`
	ModerationFlags     []string   `json:"moderation_flags" bson:"moderation_flags"`
	ModerationCheckedAt *time.Time `json:"moderation_checked_at,omitempty" bson:"moderation_checked_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at" bson:"created_at"`
}

// UserProfile - профиль автора из Users Service (имя и аватар для отзыва)
type UserProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// RatingSummary - результат пересчёта агрегированного рейтинга бизнеса
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED | REVIEW_MODERATED
	ReviewID  string    `json:"review_id"`
	EntityID  string    `json:"entity_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// ModerationVerdict - размеченный итог классификации текста отзыва.
// Unparseable выделен отдельно: это явная fail-open ветка, а не "safe"
type ModerationVerdict int

const (
	VerdictSafe ModerationVerdict = iota
	VerdictUnsafe
	VerdictUnparseable
)

func (v ModerationVerdict) String() string {
	switch v {
	case VerdictSafe:
		return "safe"
	case VerdictUnsafe:
		return "unsafe"
	default:
		return "unparseable"
	}
}

type ModerationResult struct {
	Verdict ModerationVerdict
	Flags   []string
}
