package service

import (
	"context"
	"io"
	"os"
	"testing"

	"biashara/pkg/logger"
	"biashara/reviews-service/internal/app/reviews/entity"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("test", "error", io.Discard)
	os.Exit(m.Run())
}

// MockTextGenerator мок для TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockUserProfileClient мок для UserProfileClient
type MockUserProfileClient struct {
	mock.Mock
}

func (m *MockUserProfileClient) GetUser(ctx context.Context, userID string) (*entity.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

// MockEntityRatingClient мок для EntityRatingClient
type MockEntityRatingClient struct {
	mock.Mock
}

func (m *MockEntityRatingClient) UpdateRating(ctx context.Context, entityID string, score float64, totalReviews int) error {
	args := m.Called(ctx, entityID, score, totalReviews)
	return args.Error(0)
}

// MockRatingCalculator мок для RatingCalculator
type MockRatingCalculator struct {
	mock.Mock
}

func (m *MockRatingCalculator) CalculateRatings(ctx context.Context, entityID string) (*entity.RatingSummary, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RatingSummary), args.Error(1)
}

// moderatorSpy фиксирует вызовы Moderate из фоновой горутины.
// Канал буферизован, фиксация не блокирует отправителя
type moderatorSpy struct {
	calls chan *entity.Review
}

func newModeratorSpy() *moderatorSpy {
	return &moderatorSpy{calls: make(chan *entity.Review, 1)}
}

func (s *moderatorSpy) Moderate(ctx context.Context, review *entity.Review) {
	s.calls <- review
}
