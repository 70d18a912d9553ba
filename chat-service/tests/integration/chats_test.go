//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"biashara/chat-service/internal/app/chat/entity"
	"biashara/chat-service/internal/app/chat/handler"
	"biashara/chat-service/internal/app/chat/repository"
	"biashara/chat-service/internal/app/chat/service"
	"biashara/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatsIntegrationTestSuite struct {
	suite.Suite
	client       *mongo.Client
	db           *mongo.Database
	router       *gin.Engine
	chatRepo     repository.ChatRepository
	testUserID   string
	testEntityID string
}

func TestChatsIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ChatsIntegrationTestSuite))
}

func (s *ChatsIntegrationTestSuite) SetupSuite() {
	logger.InitWithWriter("test", "error", io.Discard)

	mongoURI := getEnv("TEST_MONGODB_URI", "mongodb://localhost:27018")
	dbName := getEnv("TEST_MONGODB_DATABASE", "chat_test_db")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	s.client, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	s.Require().NoError(err)

	s.db = s.client.Database(dbName)

	s.chatRepo = repository.NewChatRepository(s.db)
	messageRepo := repository.NewMessageRepository(s.db)
	chatService := service.NewChatService(s.chatRepo, messageRepo)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	chatHandler := handler.NewChatHandler(chatService)

	chats := s.router.Group("/chats")
	chats.POST("", chatHandler.CreateChat)
	chats.POST("/:chat_id/messages", chatHandler.SendMessage)
	chats.POST("/:chat_id/read", chatHandler.MarkRead)
	chats.GET("/:chat_id/messages", chatHandler.GetChatMessages)
	chats.GET("/user/:user_id", chatHandler.GetUserChats)
}

func (s *ChatsIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	s.db.Collection("chats").DeleteMany(ctx, map[string]interface{}{})
	s.db.Collection("messages").DeleteMany(ctx, map[string]interface{}{})
	s.testUserID = "test-user-" + uuid.NewString()
	s.testEntityID = "test-entity-" + uuid.NewString()
}

func (s *ChatsIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.client.Disconnect(ctx)
	}
}

func (s *ChatsIntegrationTestSuite) createChat() string {
	reqBody := entity.CreateChatRequest{
		EntityID:   s.testEntityID,
		EntityName: "Test Cafe",
		UserID:     s.testUserID,
		UserName:   "Test User",
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/chats", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp entity.CreateChatResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ChatID
}

func (s *ChatsIntegrationTestSuite) sendMessage(chatID, text string) {
	reqBody := entity.SendMessageRequest{
		SenderID:   s.testUserID,
		SenderName: "Test User",
		Message:    text,
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/chats/"+chatID+"/messages", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)
}

func (s *ChatsIntegrationTestSuite) TestCreateChat_Idempotent() {
	firstID := s.createChat()
	secondID := s.createChat()

	s.Equal(firstID, secondID)

	count, err := s.db.Collection("chats").CountDocuments(context.Background(), map[string]interface{}{
		"entity_id": s.testEntityID,
		"user_id":   s.testUserID,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *ChatsIntegrationTestSuite) TestSendMessage_UpdatesChatSummary() {
	chatID := s.createChat()

	s.sendMessage(chatID, "First message")
	s.sendMessage(chatID, "Second message")

	chat, err := s.chatRepo.GetByID(context.Background(), chatID)
	s.Require().NoError(err)
	s.Equal(2, chat.UnreadCount)
	s.Equal("Second message", chat.LastMessage)
	s.NotNil(chat.LastMessageAt)
}

func (s *ChatsIntegrationTestSuite) TestSendMessage_MissingChatStillStoresMessage() {
	reqBody := entity.SendMessageRequest{
		SenderID:   s.testUserID,
		SenderName: "Test User",
		Message:    "Orphan message",
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/chats/ghost-chat/messages", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	count, err := s.db.Collection("messages").CountDocuments(context.Background(), map[string]interface{}{
		"chat_id": "ghost-chat",
	})
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *ChatsIntegrationTestSuite) TestMarkRead_ResetsUnread() {
	chatID := s.createChat()
	s.sendMessage(chatID, "Unread one")
	s.sendMessage(chatID, "Unread two")

	req, _ := http.NewRequest(http.MethodPost, "/chats/"+chatID+"/read", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	chat, err := s.chatRepo.GetByID(context.Background(), chatID)
	s.Require().NoError(err)
	s.Equal(0, chat.UnreadCount)
}

func (s *ChatsIntegrationTestSuite) TestMarkRead_NotFound() {
	req, _ := http.NewRequest(http.MethodPost, "/chats/ghost-chat/read", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ChatsIntegrationTestSuite) TestGetUserChatsAndMessages() {
	chatID := s.createChat()
	s.sendMessage(chatID, "Hello!")

	req, _ := http.NewRequest(http.MethodGet, "/chats/user/"+s.testUserID, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var chatList entity.ChatListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &chatList))
	s.Equal(1, chatList.Total)

	req, _ = http.NewRequest(http.MethodGet, "/chats/"+chatID+"/messages", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var messageList entity.MessageListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &messageList))
	s.Equal(1, messageList.Total)
	s.Equal("Hello!", messageList.Messages[0].Text)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
