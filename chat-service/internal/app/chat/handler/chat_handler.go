package handler

import (
	"context"
	"errors"
	"net/http"

	"biashara/chat-service/internal/app/chat/entity"
	"biashara/chat-service/internal/app/chat/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ChatServiceInterface interface {
	CreateChat(ctx context.Context, req *entity.CreateChatRequest) (*entity.Chat, error)
	SendMessage(ctx context.Context, chatID string, req *entity.SendMessageRequest) (*entity.Message, error)
	MarkRead(ctx context.Context, chatID string) error
	GetUserChats(ctx context.Context, userID string) ([]entity.Chat, error)
	GetChatMessages(ctx context.Context, chatID string) ([]entity.Message, error)
}

type ChatHandler struct {
	chatService ChatServiceInterface
	validator   *validator.Validate
}

func NewChatHandler(chatService ChatServiceInterface) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validator.New(),
	}
}

// CreateChat обрабатывает POST /chats
// Повторный вызов для той же пары возвращает существующий диалог
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req entity.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	chat, err := h.chatService.CreateChat(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat"})
		return
	}

	c.JSON(http.StatusOK, entity.CreateChatResponse{
		Success: true,
		ChatID:  chat.ID,
	})
}

// SendMessage обрабатывает POST /chats/:chat_id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	chatID := c.Param("chat_id")
	if chatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chat ID is required"})
		return
	}

	var req entity.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), chatID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, entity.SendMessageResponse{
		Success:   true,
		MessageID: message.ID,
	})
}

// MarkRead обрабатывает POST /chats/:chat_id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	chatID := c.Param("chat_id")
	if chatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chat ID is required"})
		return
	}

	if err := h.chatService.MarkRead(c.Request.Context(), chatID); err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark chat as read"})
		return
	}

	c.JSON(http.StatusOK, entity.MarkReadResponse{Success: true})
}

// GetUserChats обрабатывает GET /chats/user/:user_id
func (h *ChatHandler) GetUserChats(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	chats, err := h.chatService.GetUserChats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get chats"})
		return
	}

	c.JSON(http.StatusOK, entity.ChatListResponse{
		Chats: chats,
		Total: len(chats),
	})
}

// GetChatMessages обрабатывает GET /chats/:chat_id/messages
func (h *ChatHandler) GetChatMessages(c *gin.Context) {
	chatID := c.Param("chat_id")
	if chatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chat ID is required"})
		return
	}

	messages, err := h.chatService.GetChatMessages(c.Request.Context(), chatID)
	if err != nil {
		if errors.Is(err, service.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get messages"})
		return
	}

	c.JSON(http.StatusOK, entity.MessageListResponse{
		Messages: messages,
		Total:    len(messages),
	})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
