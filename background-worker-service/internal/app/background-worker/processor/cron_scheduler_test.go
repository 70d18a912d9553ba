package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===================== NewCronScheduler Tests =====================

func TestNewCronScheduler(t *testing.T) {
	// Arrange
	mockSvc := new(MockRatingService)

	// Act
	scheduler := NewCronScheduler(mockSvc)

	// Assert
	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, mockSvc, scheduler.ratingSvc)
}

// ===================== Start Tests =====================

func TestCronScheduler_Start_Success(t *testing.T) {
	// Arrange
	mockSvc := new(MockRatingService)
	scheduler := NewCronScheduler(mockSvc)

	ctx := context.Background()

	// Первичная сверка при старте
	mockSvc.On("RecalculateAll", mock.Anything).Return(nil)

	// Act
	err := scheduler.Start(ctx, "*/5 * * * *")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	// Cleanup
	scheduler.Stop()
	mockSvc.AssertExpectations(t)
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	// Arrange
	mockSvc := new(MockRatingService)
	scheduler := NewCronScheduler(mockSvc)

	ctx := context.Background()

	// Act
	err := scheduler.Start(ctx, "invalid cron expression")

	// Assert
	assert.Error(t, err)
}

func TestCronScheduler_Start_InitialRecalcError_ContinuesWork(t *testing.T) {
	// Arrange
	mockSvc := new(MockRatingService)
	scheduler := NewCronScheduler(mockSvc)

	ctx := context.Background()

	// Первичная сверка падает, но планировщик продолжает работать
	mockSvc.On("RecalculateAll", mock.Anything).Return(errors.New("database unavailable"))

	// Act
	err := scheduler.Start(ctx, "*/5 * * * *")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	// Cleanup
	scheduler.Stop()
}

// ===================== Stop Tests =====================

func TestCronScheduler_Stop(t *testing.T) {
	// Arrange
	mockSvc := new(MockRatingService)
	scheduler := NewCronScheduler(mockSvc)

	ctx := context.Background()
	mockSvc.On("RecalculateAll", mock.Anything).Return(nil)

	scheduler.Start(ctx, "*/5 * * * *")

	// Act
	scheduler.Stop()

	// Assert
	assert.NotNil(t, scheduler.cron)
}

// ===================== GetEntries Tests =====================

func TestCronScheduler_GetEntries_Empty(t *testing.T) {
	// Arrange
	mockSvc := new(MockRatingService)
	scheduler := NewCronScheduler(mockSvc)

	// Act
	entries := scheduler.GetEntries()

	// Assert
	assert.Empty(t, entries)
}
