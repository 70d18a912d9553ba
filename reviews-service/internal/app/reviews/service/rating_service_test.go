package service

import (
	"context"
	"errors"
	"testing"

	"biashara/reviews-service/internal/app/reviews/entity"
	"biashara/reviews-service/internal/app/reviews/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRatingServiceForTest() (*RatingService, *mocks.MockReviewRepository, *MockEntityRatingClient) {
	reviewRepo := new(mocks.MockReviewRepository)
	entityClient := new(MockEntityRatingClient)
	svc := NewRatingService(reviewRepo, entityClient)
	return svc, reviewRepo, entityClient
}

func TestCalculateRatings_Average(t *testing.T) {
	svc, reviewRepo, entityClient := newRatingServiceForTest()

	ctx := context.Background()
	entityID := "entity-456"
	reviews := []entity.Review{
		{ID: "r1", EntityID: entityID, Rating: 5},
		{ID: "r2", EntityID: entityID, Rating: 4},
	}

	reviewRepo.On("GetPublishedByEntityID", ctx, entityID).Return(reviews, nil)
	entityClient.On("UpdateRating", ctx, entityID, 4.5, 2).Return(nil)

	summary, err := svc.CalculateRatings(ctx, entityID)

	assert.NoError(t, err)
	assert.Equal(t, 4.5, summary.AverageRating)
	assert.Equal(t, 2, summary.TotalReviews)
	entityClient.AssertCalled(t, "UpdateRating", ctx, entityID, 4.5, 2)
}

func TestCalculateRatings_RoundsToOneDecimal(t *testing.T) {
	svc, reviewRepo, entityClient := newRatingServiceForTest()

	ctx := context.Background()
	entityID := "entity-456"
	reviews := []entity.Review{
		{ID: "r1", EntityID: entityID, Rating: 5},
		{ID: "r2", EntityID: entityID, Rating: 4},
		{ID: "r3", EntityID: entityID, Rating: 4},
	}

	reviewRepo.On("GetPublishedByEntityID", ctx, entityID).Return(reviews, nil)
	entityClient.On("UpdateRating", ctx, entityID, 4.3, 3).Return(nil)

	summary, err := svc.CalculateRatings(ctx, entityID)

	assert.NoError(t, err)
	assert.Equal(t, 4.3, summary.AverageRating)
	assert.Equal(t, 3, summary.TotalReviews)
}

func TestCalculateRatings_NoPublishedReviews(t *testing.T) {
	svc, reviewRepo, entityClient := newRatingServiceForTest()

	ctx := context.Background()
	entityID := "entity-456"

	reviewRepo.On("GetPublishedByEntityID", ctx, entityID).Return([]entity.Review{}, nil)
	entityClient.On("UpdateRating", ctx, entityID, 0.0, 0).Return(nil)

	summary, err := svc.CalculateRatings(ctx, entityID)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Equal(t, 0, summary.TotalReviews)
	// Нулевой результат тоже записывается: скрытие последнего отзыва
	// должно обнулить счёт на записи бизнеса
	entityClient.AssertCalled(t, "UpdateRating", ctx, entityID, 0.0, 0)
}

func TestCalculateRatings_RepoError(t *testing.T) {
	svc, reviewRepo, entityClient := newRatingServiceForTest()

	ctx := context.Background()
	reviewRepo.On("GetPublishedByEntityID", ctx, "entity-456").Return(nil, errors.New("db error"))

	summary, err := svc.CalculateRatings(ctx, "entity-456")

	assert.Error(t, err)
	assert.Nil(t, summary)
	entityClient.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculateRatings_EntityClientError(t *testing.T) {
	svc, reviewRepo, entityClient := newRatingServiceForTest()

	ctx := context.Background()
	reviews := []entity.Review{{ID: "r1", EntityID: "entity-456", Rating: 5}}

	reviewRepo.On("GetPublishedByEntityID", ctx, "entity-456").Return(reviews, nil)
	entityClient.On("UpdateRating", ctx, "entity-456", 5.0, 1).Return(errors.New("directory unavailable"))

	summary, err := svc.CalculateRatings(ctx, "entity-456")

	assert.Error(t, err)
	assert.Nil(t, summary)
}
