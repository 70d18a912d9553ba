package mocks

import (
	"context"
	"time"

	"biashara/chat-service/internal/app/chat/entity"

	"github.com/stretchr/testify/mock"
)

// MockChatRepository мок для ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Chat), args.Error(1)
}

func (m *MockChatRepository) GetByEntityAndUser(ctx context.Context, entityID, userID string) (*entity.Chat, error) {
	args := m.Called(ctx, entityID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Chat), args.Error(1)
}

func (m *MockChatRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Chat), args.Error(1)
}

func (m *MockChatRepository) RecordMessage(ctx context.Context, chatID, text string, at time.Time) error {
	args := m.Called(ctx, chatID, text, at)
	return args.Error(0)
}

func (m *MockChatRepository) ResetUnread(ctx context.Context, chatID string) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

// MockMessageRepository мок для MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByChatID(ctx context.Context, chatID string) ([]entity.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Message), args.Error(1)
}
