package entity

// CreateChatRequest запрос на создание диалога
type CreateChatRequest struct {
	EntityID   string `json:"entity_id" validate:"required"`
	EntityName string `json:"entity_name" validate:"required"`
	UserID     string `json:"user_id" validate:"required"`
	UserName   string `json:"user_name" validate:"required"`
}

// CreateChatResponse ответ на создание диалога
type CreateChatResponse struct {
	Success bool   `json:"success"`
	ChatID  string `json:"chat_id"`
}

// SendMessageRequest запрос на отправку сообщения
type SendMessageRequest struct {
	SenderID     string `json:"sender_id" validate:"required"`
	SenderName   string `json:"sender_name" validate:"required"`
	SenderAvatar string `json:"sender_avatar,omitempty"`
	Message      string `json:"message" validate:"required,min=1,max=2000"`
}

// SendMessageResponse ответ на отправку сообщения
type SendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
}

// MarkReadResponse ответ на сброс счетчика непрочитанных
type MarkReadResponse struct {
	Success bool `json:"success"`
}

// ChatListResponse список диалогов пользователя
type ChatListResponse struct {
	Chats []Chat `json:"chats"`
	Total int    `json:"total"`
}

// MessageListResponse история сообщений диалога
type MessageListResponse struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
}

// ErrorResponse стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}
