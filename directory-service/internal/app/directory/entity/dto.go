package entity

import "github.com/google/uuid"

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateEntityRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Address     string    `json:"address" validate:"omitempty,max=300"`
	Phone       string    `json:"phone" validate:"omitempty,max=30"`
	PhotoURL    string    `json:"photo_url" validate:"omitempty,url"`
}

type UpdateEntityRequest struct {
	Name        string    `json:"name" validate:"omitempty,min=2,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	CategoryID  uuid.UUID `json:"category_id" validate:"omitempty"`
	Address     string    `json:"address" validate:"omitempty,max=300"`
	Phone       string    `json:"phone" validate:"omitempty,max=30"`
	PhotoURL    string    `json:"photo_url" validate:"omitempty,url"`
}

// UpdateRatingRequest тело внутреннего запроса от агрегатора рейтинга
type UpdateRatingRequest struct {
	BiasharaScore float64 `json:"biashara_score" validate:"min=0,max=5"`
	TotalReviews  int     `json:"total_reviews" validate:"min=0"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type EntityListResponse struct {
	Entities []EntityWithCategory `json:"entities"`
	Total    int                  `json:"total"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}
