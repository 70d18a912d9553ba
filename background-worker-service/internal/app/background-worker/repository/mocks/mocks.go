package mocks

import (
	"context"

	"biashara/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEntityRepository мок для EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) UpdateRating(ctx context.Context, id uuid.UUID, score float64, totalReviews int) error {
	args := m.Called(ctx, id, score, totalReviews)
	return args.Error(0)
}

func (m *MockEntityRepository) GetAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) GetPublishedRatings(ctx context.Context, entityID string) ([]int, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// MockRatingSnapshotRepository мок для RatingSnapshotRepository
type MockRatingSnapshotRepository struct {
	mock.Mock
}

func (m *MockRatingSnapshotRepository) Get(ctx context.Context, entityID string) (*entity.RatingSnapshot, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RatingSnapshot), args.Error(1)
}

func (m *MockRatingSnapshotRepository) Set(ctx context.Context, snapshot *entity.RatingSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}
