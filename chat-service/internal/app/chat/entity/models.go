package entity

import "time"

// Chat представляет диалог пользователя с бизнесом
// Пара (entity_id, user_id) уникальна: повторное создание возвращает
// существующий диалог
type Chat struct {
	ID            string     `json:"id" bson:"_id"`
	EntityID      string     `json:"entity_id" bson:"entity_id"`
	EntityName    string     `json:"entity_name" bson:"entity_name"`
	UserID        string     `json:"user_id" bson:"user_id"`
	UserName      string     `json:"user_name" bson:"user_name"`
	LastMessage   string     `json:"last_message" bson:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" bson:"last_message_at,omitempty"`
	UnreadCount   int        `json:"unread_count" bson:"unread_count"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
}

// Message представляет сообщение в диалоге
// Хранится в отдельной коллекции со ссылкой на диалог через chat_id
type Message struct {
	ID           string    `json:"id" bson:"_id"`
	ChatID       string    `json:"chat_id" bson:"chat_id"`
	SenderID     string    `json:"sender_id" bson:"sender_id"`
	SenderName   string    `json:"sender_name" bson:"sender_name"`
	SenderAvatar string    `json:"sender_avatar,omitempty" bson:"sender_avatar,omitempty"`
	Text         string    `json:"text" bson:"text"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
