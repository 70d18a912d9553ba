package entity

// SubmitReviewRequest - запрос на создание отзыва
type SubmitReviewRequest struct {
	EntityID         string   `json:"entity_id" validate:"required"`
	Rating           int      `json:"rating" validate:"required,min=1,max=5"`
	ReviewText       string   `json:"review_text" validate:"required,min=10,max=500"`
	DateOfExperience string   `json:"date_of_experience" validate:"required"`
	PhotoURLs        []string `json:"photo_urls" validate:"omitempty"`
}

// SubmitReviewResponse - ответ на создание отзыва.
// Отзыв возвращается сразу со статусом published, до запуска модерации
type SubmitReviewResponse struct {
	Success  bool    `json:"success"`
	ReviewID string  `json:"review_id"`
	Review   *Review `json:"review"`
}

// CalculateRatingsRequest - запрос на административный пересчёт рейтинга
type CalculateRatingsRequest struct {
	EntityID string `json:"entity_id" validate:"required"`
}

type CalculateRatingsResponse struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// ModerateReviewRequest - административное действие над отзывом
type ModerateReviewRequest struct {
	Action string `json:"action" validate:"required,oneof=approve hide"`
}

type ModerateReviewResponse struct {
	Success   bool   `json:"success"`
	NewStatus string `json:"new_status"`
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
