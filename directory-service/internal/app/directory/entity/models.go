package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category представляет категорию бизнесов (рестораны, сервисы и т.д.)
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Entity представляет бизнес в справочнике
// BiasharaScore и TotalReviews перезаписываются агрегатором рейтинга
type Entity struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	CategoryID    uuid.UUID `json:"category_id" gorm:"type:uuid;not null"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	PhotoURL      string    `json:"photo_url"`
	BiasharaScore float64   `json:"biashara_score" gorm:"default:0"`
	TotalReviews  int       `json:"total_reviews" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Category *Category `json:"-" gorm:"foreignKey:CategoryID"`
}

// TableName задает имя таблицы для GORM
func (Entity) TableName() string {
	return "entities"
}

// EntityWithCategory содержит бизнес с информацией о категории
type EntityWithCategory struct {
	Entity
	Category Category `json:"category"`
}
