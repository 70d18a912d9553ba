package handler

import (
	"context"
	"errors"
	"net/http"

	"biashara/reviews-service/internal/app/reviews/entity"
	infrahttp "biashara/reviews-service/internal/app/reviews/infrastructure/http"
	"biashara/reviews-service/internal/app/reviews/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewServiceInterface interface {
	SubmitReview(ctx context.Context, userID string, req *entity.SubmitReviewRequest) (*entity.Review, error)
	GetReviewsByEntity(ctx context.Context, entityID string) ([]entity.Review, error)
	GetUserReviews(ctx context.Context, userID string) ([]entity.Review, error)
	ModerateReview(ctx context.Context, reviewID string, action string, adminID string) (string, error)
}

type RatingServiceInterface interface {
	CalculateRatings(ctx context.Context, entityID string) (*entity.RatingSummary, error)
}

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	ratingService RatingServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface, ratingService RatingServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		ratingService: ratingService,
		validator:     validator.New(),
	}
}

// SubmitReview обрабатывает POST /reviews
// Возвращает отзыв сразу: модерация выполняется в фоне после ответа
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req entity.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}

	c.JSON(http.StatusCreated, entity.SubmitReviewResponse{
		Success:  true,
		ReviewID: review.ID,
		Review:   review,
	})
}

// GetReviewsByEntity обрабатывает GET /reviews/entity/:entity_id
func (h *ReviewHandler) GetReviewsByEntity(c *gin.Context) {
	entityID := c.Param("entity_id")
	if entityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entity ID is required"})
		return
	}

	reviews, err := h.reviewService.GetReviewsByEntity(c.Request.Context(), entityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	})
}

// GetMyReviews обрабатывает GET /reviews/me
func (h *ReviewHandler) GetMyReviews(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetUserReviews(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	})
}

// ModerateReview обрабатывает POST /reviews/:review_id/moderate
// Доступно только роли admin (проверяется в router)
func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}

	reviewID := c.Param("review_id")
	if reviewID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review ID is required"})
		return
	}

	var req entity.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	newStatus, err := h.reviewService.ModerateReview(c.Request.Context(), reviewID, req.Action, adminID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate review"})
		return
	}

	c.JSON(http.StatusOK, entity.ModerateReviewResponse{
		Success:   true,
		NewStatus: newStatus,
	})
}

// CalculateRatings обрабатывает POST /ratings/calculate
// Административный пересчёт: ошибки, в отличие от фонового, видны вызывающему
func (h *ReviewHandler) CalculateRatings(c *gin.Context) {
	var req entity.CalculateRatingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	summary, err := h.ratingService.CalculateRatings(c.Request.Context(), req.EntityID)
	if err != nil {
		if errors.Is(err, infrahttp.ErrEntityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate ratings"})
		return
	}

	c.JSON(http.StatusOK, entity.CalculateRatingsResponse{
		AverageRating: summary.AverageRating,
		TotalReviews:  summary.TotalReviews,
	})
}

// callerID достает user_id, положенный auth middleware
func callerID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}

	userIDStr, ok := userID.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return "", false
	}

	return userIDStr, true
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
