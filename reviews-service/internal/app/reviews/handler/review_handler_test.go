package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"biashara/reviews-service/internal/app/reviews/entity"
	"biashara/reviews-service/internal/app/reviews/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewService мок для ReviewService в тестах handler
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, userID string, req *entity.SubmitReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) GetReviewsByEntity(ctx context.Context, entityID string) ([]entity.Review, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewService) GetUserReviews(ctx context.Context, userID string) ([]entity.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewService) ModerateReview(ctx context.Context, reviewID string, action string, adminID string) (string, error) {
	args := m.Called(ctx, reviewID, action, adminID)
	return args.String(0), args.Error(1)
}

// MockRatingService мок для RatingService в тестах handler
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) CalculateRatings(ctx context.Context, entityID string) (*entity.RatingSummary, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RatingSummary), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withIdentity эмулирует auth middleware в тестах
func withIdentity(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func TestSubmitReviewHandler_Success(t *testing.T) {
	router := setupTestRouter()

	reviewService := new(MockReviewService)
	ratingService := new(MockRatingService)
	h := NewReviewHandler(reviewService, ratingService)

	review := &entity.Review{
		ID:               "review_1756600000000_user-123",
		EntityID:         "entity-456",
		UserID:           "user-123",
		Rating:           5,
		ModerationStatus: entity.StatusPublished,
		ModerationFlags:  []string{},
	}

	reviewService.On("SubmitReview", mock.Anything, "user-123", mock.AnythingOfType("*entity.SubmitReviewRequest")).Return(review, nil)

	router.POST("/reviews/", withIdentity("user-123", "user"), h.SubmitReview)

	body, _ := json.Marshal(entity.SubmitReviewRequest{
		EntityID:         "entity-456",
		Rating:           5,
		ReviewText:       "Excellent service, highly recommended.",
		DateOfExperience: "2026-08-15",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/reviews/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.SubmitReviewResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, review.ID, resp.ReviewID)
	assert.Equal(t, entity.StatusPublished, resp.Review.ModerationStatus)
}

func TestSubmitReviewHandler_Unauthorized(t *testing.T) {
	router := setupTestRouter()

	h := NewReviewHandler(new(MockReviewService), new(MockRatingService))
	router.POST("/reviews/", h.SubmitReview)

	body, _ := json.Marshal(entity.SubmitReviewRequest{
		EntityID:         "entity-456",
		Rating:           5,
		ReviewText:       "Excellent service, highly recommended.",
		DateOfExperience: "2026-08-15",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/reviews/", bytes.NewBuffer(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitReviewHandler_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		req  entity.SubmitReviewRequest
	}{
		{"rating too low", entity.SubmitReviewRequest{EntityID: "e", Rating: 0, ReviewText: "Long enough review text.", DateOfExperience: "2026-08-15"}},
		{"rating too high", entity.SubmitReviewRequest{EntityID: "e", Rating: 6, ReviewText: "Long enough review text.", DateOfExperience: "2026-08-15"}},
		{"text too short", entity.SubmitReviewRequest{EntityID: "e", Rating: 4, ReviewText: "short", DateOfExperience: "2026-08-15"}},
		{"missing entity", entity.SubmitReviewRequest{Rating: 4, ReviewText: "Long enough review text.", DateOfExperience: "2026-08-15"}},
		{"missing date", entity.SubmitReviewRequest{EntityID: "e", Rating: 4, ReviewText: "Long enough review text."}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupTestRouter()
			reviewService := new(MockReviewService)
			h := NewReviewHandler(reviewService, new(MockRatingService))
			router.POST("/reviews/", withIdentity("user-123", "user"), h.SubmitReview)

			body, _ := json.Marshal(tc.req)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/reviews/", bytes.NewBuffer(body))
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			reviewService.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetReviewsByEntityHandler_Success(t *testing.T) {
	router := setupTestRouter()

	reviewService := new(MockReviewService)
	h := NewReviewHandler(reviewService, new(MockRatingService))

	reviews := []entity.Review{
		{ID: "r1", EntityID: "entity-456", Rating: 5, ModerationStatus: entity.StatusPublished},
		{ID: "r2", EntityID: "entity-456", Rating: 4, ModerationStatus: entity.StatusPublished},
	}
	reviewService.On("GetReviewsByEntity", mock.Anything, "entity-456").Return(reviews, nil)

	router.GET("/reviews/entity/:entity_id", h.GetReviewsByEntity)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/reviews/entity/entity-456", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ReviewListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Reviews, 2)
}

func TestGetMyReviewsHandler_Success(t *testing.T) {
	router := setupTestRouter()

	reviewService := new(MockReviewService)
	h := NewReviewHandler(reviewService, new(MockRatingService))

	reviewService.On("GetUserReviews", mock.Anything, "user-123").Return([]entity.Review{
		{ID: "r1", UserID: "user-123", Rating: 5},
	}, nil)

	router.GET("/reviews/me", withIdentity("user-123", "user"), h.GetMyReviews)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/reviews/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ReviewListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestModerateReviewHandler_Success(t *testing.T) {
	router := setupTestRouter()

	reviewService := new(MockReviewService)
	h := NewReviewHandler(reviewService, new(MockRatingService))

	reviewService.On("ModerateReview", mock.Anything, "review-1", "hide", "admin-1").Return(entity.StatusHidden, nil)

	router.POST("/reviews/:review_id/moderate", withIdentity("admin-1", "admin"), h.ModerateReview)

	body, _ := json.Marshal(entity.ModerateReviewRequest{Action: "hide"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/reviews/review-1/moderate", bytes.NewBuffer(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ModerateReviewResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, entity.StatusHidden, resp.NewStatus)
}

func TestModerateReviewHandler_InvalidAction(t *testing.T) {
	router := setupTestRouter()

	reviewService := new(MockReviewService)
	h := NewReviewHandler(reviewService, new(MockRatingService))

	router.POST("/reviews/:review_id/moderate", withIdentity("admin-1", "admin"), h.ModerateReview)

	body, _ := json.Marshal(entity.ModerateReviewRequest{Action: "delete"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/reviews/review-1/moderate", bytes.NewBuffer(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	reviewService.AssertNotCalled(t, "ModerateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestModerateReviewHandler_NotFound(t *testing.T) {
	router := setupTestRouter()

	reviewService := new(MockReviewService)
	h := NewReviewHandler(reviewService, new(MockRatingService))

	reviewService.On("ModerateReview", mock.Anything, "missing", "approve", "admin-1").Return("", service.ErrReviewNotFound)

	router.POST("/reviews/:review_id/moderate", withIdentity("admin-1", "admin"), h.ModerateReview)

	body, _ := json.Marshal(entity.ModerateReviewRequest{Action: "approve"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/reviews/missing/moderate", bytes.NewBuffer(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalculateRatingsHandler_Success(t *testing.T) {
	router := setupTestRouter()

	ratingService := new(MockRatingService)
	h := NewReviewHandler(new(MockReviewService), ratingService)

	ratingService.On("CalculateRatings", mock.Anything, "entity-456").Return(&entity.RatingSummary{AverageRating: 4.3, TotalReviews: 3}, nil)

	router.POST("/ratings/calculate", h.CalculateRatings)

	body, _ := json.Marshal(entity.CalculateRatingsRequest{EntityID: "entity-456"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/ratings/calculate", bytes.NewBuffer(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.CalculateRatingsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4.3, resp.AverageRating)
	assert.Equal(t, 3, resp.TotalReviews)
}

func TestCalculateRatingsHandler_MissingEntityID(t *testing.T) {
	router := setupTestRouter()

	ratingService := new(MockRatingService)
	h := NewReviewHandler(new(MockReviewService), ratingService)

	router.POST("/ratings/calculate", h.CalculateRatings)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/ratings/calculate", bytes.NewBufferString(`{}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	ratingService.AssertNotCalled(t, "CalculateRatings", mock.Anything, mock.Anything)
}

func TestCalculateRatingsHandler_ServiceError(t *testing.T) {
	router := setupTestRouter()

	ratingService := new(MockRatingService)
	h := NewReviewHandler(new(MockReviewService), ratingService)

	ratingService.On("CalculateRatings", mock.Anything, "entity-456").Return(nil, fmt.Errorf("failed to update entity rating: %w", http.ErrHandlerTimeout))

	router.POST("/ratings/calculate", h.CalculateRatings)

	body, _ := json.Marshal(entity.CalculateRatingsRequest{EntityID: "entity-456"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/ratings/calculate", bytes.NewBuffer(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
