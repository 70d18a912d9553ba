package repository

import (
	"context"
	"time"

	"biashara/chat-service/internal/app/chat/entity"
)

// ChatRepository определяет методы для работы с диалогами в MongoDB
type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	// GetByEntityAndUser находит существующий диалог пары (бизнес, пользователь)
	GetByEntityAndUser(ctx context.Context, entityID, userID string) (*entity.Chat, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Chat, error)
	// RecordMessage обновляет last_message и увеличивает счетчик
	// непрочитанных на единицу
	RecordMessage(ctx context.Context, chatID, text string, at time.Time) error
	ResetUnread(ctx context.Context, chatID string) error
}

// MessageRepository определяет методы для работы с сообщениями в MongoDB
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByChatID(ctx context.Context, chatID string) ([]entity.Message, error)
}
