package repository

import (
	"context"
	"fmt"
	"time"

	"biashara/chat-service/internal/app/chat/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type messageRepository struct {
	collection *mongo.Collection
}

// NewMessageRepository создает новый репозиторий сообщений
func NewMessageRepository(db *mongo.Database) MessageRepository {
	collection := db.Collection("messages")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Индекс по chat_id: загрузка истории диалога
	chatIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "chat_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
		Options: options.Index().SetName("chat_id_created_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, chatIndex); err != nil {
		fmt.Printf("Warning: failed to create index on chat_id: %v\n", err)
	}

	return &messageRepository{
		collection: collection,
	}
}

// Create сохраняет новое сообщение
// Запись безусловна: сообщение попадает в коллекцию даже если
// родительский диалог удален конкурентно
func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetByChatID получает историю диалога в хронологическом порядке
func (r *messageRepository) GetByChatID(ctx context.Context, chatID string) ([]entity.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	return messages, nil
}
