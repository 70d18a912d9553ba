package service

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"biashara/chat-service/internal/app/chat/entity"
	"biashara/chat-service/internal/app/chat/repository"
	"biashara/chat-service/internal/app/chat/repository/mocks"
	"biashara/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("test", "error", io.Discard)
	os.Exit(m.Run())
}

func newChatServiceForTest() (*ChatService, *mocks.MockChatRepository, *mocks.MockMessageRepository) {
	chatRepo := new(mocks.MockChatRepository)
	messageRepo := new(mocks.MockMessageRepository)
	svc := NewChatService(chatRepo, messageRepo)
	return svc, chatRepo, messageRepo
}

func TestCreateChat_New(t *testing.T) {
	svc, chatRepo, _ := newChatServiceForTest()

	ctx := context.Background()
	req := &entity.CreateChatRequest{
		EntityID:   "entity-456",
		EntityName: "Mama Njeri Cafe",
		UserID:     "user-123",
		UserName:   "Amina",
	}

	chatRepo.On("GetByEntityAndUser", ctx, "entity-456", "user-123").Return(nil, repository.ErrChatNotFound)
	chatRepo.On("Create", ctx, mock.AnythingOfType("*entity.Chat")).Return(nil)

	chat, err := svc.CreateChat(ctx, req)

	assert.NoError(t, err)
	assert.NotEmpty(t, chat.ID)
	assert.Equal(t, "entity-456", chat.EntityID)
	assert.Equal(t, 0, chat.UnreadCount)
	chatRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*entity.Chat"))
}

func TestCreateChat_ExistingReturned(t *testing.T) {
	svc, chatRepo, _ := newChatServiceForTest()

	ctx := context.Background()
	existing := &entity.Chat{ID: "chat-1", EntityID: "entity-456", UserID: "user-123", UnreadCount: 3}

	chatRepo.On("GetByEntityAndUser", ctx, "entity-456", "user-123").Return(existing, nil)

	chat, err := svc.CreateChat(ctx, &entity.CreateChatRequest{
		EntityID:   "entity-456",
		EntityName: "Mama Njeri Cafe",
		UserID:     "user-123",
		UserName:   "Amina",
	})

	assert.NoError(t, err)
	assert.Equal(t, "chat-1", chat.ID)
	chatRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateChat_LostRaceReturnsWinner(t *testing.T) {
	svc, chatRepo, _ := newChatServiceForTest()

	ctx := context.Background()
	winner := &entity.Chat{ID: "chat-winner", EntityID: "entity-456", UserID: "user-123"}

	chatRepo.On("GetByEntityAndUser", ctx, "entity-456", "user-123").Return(nil, repository.ErrChatNotFound).Once()
	chatRepo.On("Create", ctx, mock.Anything).Return(repository.ErrChatExists)
	chatRepo.On("GetByEntityAndUser", ctx, "entity-456", "user-123").Return(winner, nil)

	chat, err := svc.CreateChat(ctx, &entity.CreateChatRequest{
		EntityID:   "entity-456",
		EntityName: "Mama Njeri Cafe",
		UserID:     "user-123",
		UserName:   "Amina",
	})

	assert.NoError(t, err)
	assert.Equal(t, "chat-winner", chat.ID)
}

func TestCreateChat_RepoError(t *testing.T) {
	svc, chatRepo, _ := newChatServiceForTest()

	ctx := context.Background()
	chatRepo.On("GetByEntityAndUser", ctx, "entity-456", "user-123").Return(nil, errors.New("db error"))

	chat, err := svc.CreateChat(ctx, &entity.CreateChatRequest{
		EntityID:   "entity-456",
		EntityName: "Mama Njeri Cafe",
		UserID:     "user-123",
		UserName:   "Amina",
	})

	assert.Error(t, err)
	assert.Nil(t, chat)
}

func TestSendMessage_Success(t *testing.T) {
	svc, chatRepo, messageRepo := newChatServiceForTest()

	ctx := context.Background()
	req := &entity.SendMessageRequest{
		SenderID:   "user-123",
		SenderName: "Amina",
		Message:    "Is the cafe open on Sundays?",
	}

	messageRepo.On("Create", ctx, mock.AnythingOfType("*entity.Message")).Return(nil)
	chatRepo.On("RecordMessage", ctx, "chat-1", req.Message, mock.AnythingOfType("time.Time")).Return(nil)

	message, err := svc.SendMessage(ctx, "chat-1", req)

	assert.NoError(t, err)
	assert.NotEmpty(t, message.ID)
	assert.Equal(t, "chat-1", message.ChatID)
	assert.Equal(t, req.Message, message.Text)
	chatRepo.AssertCalled(t, "RecordMessage", ctx, "chat-1", req.Message, mock.AnythingOfType("time.Time"))
}

func TestSendMessage_MissingParentIsSilentNoOp(t *testing.T) {
	svc, chatRepo, messageRepo := newChatServiceForTest()

	ctx := context.Background()
	req := &entity.SendMessageRequest{
		SenderID:   "user-123",
		SenderName: "Amina",
		Message:    "Anyone here?",
	}

	messageRepo.On("Create", ctx, mock.Anything).Return(nil)
	chatRepo.On("RecordMessage", ctx, "deleted-chat", req.Message, mock.Anything).Return(repository.ErrChatNotFound)

	message, err := svc.SendMessage(ctx, "deleted-chat", req)

	// Сообщение записано, отсутствие родительского диалога не ошибка
	assert.NoError(t, err)
	assert.NotNil(t, message)
}

func TestSendMessage_CreateError(t *testing.T) {
	svc, chatRepo, messageRepo := newChatServiceForTest()

	ctx := context.Background()
	messageRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error"))

	message, err := svc.SendMessage(ctx, "chat-1", &entity.SendMessageRequest{
		SenderID:   "user-123",
		SenderName: "Amina",
		Message:    "Hello there.",
	})

	assert.Error(t, err)
	assert.Nil(t, message)
	chatRepo.AssertNotCalled(t, "RecordMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkRead_Success(t *testing.T) {
	svc, chatRepo, _ := newChatServiceForTest()

	ctx := context.Background()
	chatRepo.On("ResetUnread", ctx, "chat-1").Return(nil)

	err := svc.MarkRead(ctx, "chat-1")

	assert.NoError(t, err)
}

func TestMarkRead_NotFound(t *testing.T) {
	svc, chatRepo, _ := newChatServiceForTest()

	ctx := context.Background()
	chatRepo.On("ResetUnread", ctx, "missing").Return(repository.ErrChatNotFound)

	err := svc.MarkRead(ctx, "missing")

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestGetUserChats_Success(t *testing.T) {
	svc, chatRepo, _ := newChatServiceForTest()

	ctx := context.Background()
	now := time.Now().UTC()
	chats := []entity.Chat{
		{ID: "chat-1", UserID: "user-123", LastMessage: "See you!", LastMessageAt: &now},
		{ID: "chat-2", UserID: "user-123"},
	}

	chatRepo.On("GetByUserID", ctx, "user-123").Return(chats, nil)

	result, err := svc.GetUserChats(ctx, "user-123")

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestGetChatMessages_Success(t *testing.T) {
	svc, chatRepo, messageRepo := newChatServiceForTest()

	ctx := context.Background()
	chat := &entity.Chat{ID: "chat-1", EntityID: "entity-456", UserID: "user-123"}
	messages := []entity.Message{
		{ID: "m1", ChatID: "chat-1", Text: "Hi"},
		{ID: "m2", ChatID: "chat-1", Text: "Hello"},
	}

	chatRepo.On("GetByID", ctx, "chat-1").Return(chat, nil)
	messageRepo.On("GetByChatID", ctx, "chat-1").Return(messages, nil)

	result, err := svc.GetChatMessages(ctx, "chat-1")

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestGetChatMessages_ChatNotFound(t *testing.T) {
	svc, chatRepo, messageRepo := newChatServiceForTest()

	ctx := context.Background()
	chatRepo.On("GetByID", ctx, "missing").Return(nil, repository.ErrChatNotFound)

	result, err := svc.GetChatMessages(ctx, "missing")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrChatNotFound)
	messageRepo.AssertNotCalled(t, "GetByChatID", mock.Anything, mock.Anything)
}
