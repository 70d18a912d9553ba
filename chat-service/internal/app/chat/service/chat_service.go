package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biashara/chat-service/internal/app/chat/entity"
	"biashara/chat-service/internal/app/chat/repository"
	"biashara/pkg/logger"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrChatNotFound = errors.New("chat not found")
)

// ChatService обрабатывает диалоги и сообщения
type ChatService struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
}

// NewChatService создает новый сервис диалогов
func NewChatService(chatRepo repository.ChatRepository, messageRepo repository.MessageRepository) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
	}
}

// CreateChat идемпотентно создает диалог пары (бизнес, пользователь)
// Существующий диалог возвращается как есть, дубликаты не появляются
func (s *ChatService) CreateChat(ctx context.Context, req *entity.CreateChatRequest) (*entity.Chat, error) {
	existing, err := s.chatRepo.GetByEntityAndUser(ctx, req.EntityID, req.UserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrChatNotFound) {
		return nil, fmt.Errorf("failed to look up chat: %w", err)
	}

	chat := &entity.Chat{
		ID:          uuid.NewString(),
		EntityID:    req.EntityID,
		EntityName:  req.EntityName,
		UserID:      req.UserID,
		UserName:    req.UserName,
		UnreadCount: 0,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.chatRepo.Create(ctx, chat); err != nil {
		if errors.Is(err, repository.ErrChatExists) {
			// Проиграли гонку другому создателю той же пары
			return s.chatRepo.GetByEntityAndUser(ctx, req.EntityID, req.UserID)
		}
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	logger.Info().
		Str("chat_id", chat.ID).
		Str("entity_id", chat.EntityID).
		Str("user_id", chat.UserID).
		Msg("Chat created")

	return chat, nil
}

// SendMessage добавляет сообщение в диалог
// Запись сообщения безусловна; обновление сводки диалога пропускается
// молча, если родительский диалог удален конкурентно
func (s *ChatService) SendMessage(ctx context.Context, chatID string, req *entity.SendMessageRequest) (*entity.Message, error) {
	now := time.Now().UTC()

	message := &entity.Message{
		ID:           uuid.NewString(),
		ChatID:       chatID,
		SenderID:     req.SenderID,
		SenderName:   req.SenderName,
		SenderAvatar: req.SenderAvatar,
		Text:         req.Message,
		CreatedAt:    now,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := s.chatRepo.RecordMessage(ctx, chatID, req.Message, now); err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			logger.Debug().
				Str("chat_id", chatID).
				Msg("Parent chat missing, message summary update skipped")
			return message, nil
		}
		return nil, fmt.Errorf("failed to update chat summary: %w", err)
	}

	return message, nil
}

// MarkRead сбрасывает счетчик непрочитанных сообщений диалога
func (s *ChatService) MarkRead(ctx context.Context, chatID string) error {
	if err := s.chatRepo.ResetUnread(ctx, chatID); err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return ErrChatNotFound
		}
		return fmt.Errorf("failed to reset unread count: %w", err)
	}

	return nil
}

// GetUserChats получает список диалогов пользователя
func (s *ChatService) GetUserChats(ctx context.Context, userID string) ([]entity.Chat, error) {
	chats, err := s.chatRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user chats: %w", err)
	}

	return chats, nil
}

// GetChatMessages получает историю сообщений диалога
func (s *ChatService) GetChatMessages(ctx context.Context, chatID string) ([]entity.Message, error) {
	if _, err := s.chatRepo.GetByID(ctx, chatID); err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	messages, err := s.messageRepo.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat messages: %w", err)
	}

	return messages, nil
}
