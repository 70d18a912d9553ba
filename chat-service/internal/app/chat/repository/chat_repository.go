package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biashara/chat-service/internal/app/chat/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrChatNotFound = errors.New("chat not found")
	// ErrChatExists возникает при гонке двух создателей одной пары
	ErrChatExists = errors.New("chat already exists")
)

type chatRepository struct {
	collection *mongo.Collection
}

// NewChatRepository создает новый репозиторий диалогов
// Уникальный индекс (entity_id, user_id) закрывает гонку создания пары
func NewChatRepository(db *mongo.Database) ChatRepository {
	collection := db.Collection("chats")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pairIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_id", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetName("entity_user_idx").SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, pairIndex); err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		fmt.Printf("Warning: failed to create index on (entity_id, user_id): %v\n", err)
	}

	userIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetName("user_id_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, userIndex); err != nil {
		fmt.Printf("Warning: failed to create index on user_id: %v\n", err)
	}

	return &chatRepository{
		collection: collection,
	}
}

// Create сохраняет новый диалог
func (r *chatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, chat); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrChatExists
		}
		return fmt.Errorf("failed to create chat: %w", err)
	}

	return nil
}

// GetByID получает диалог по ID
func (r *chatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	var chat entity.Chat
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return &chat, nil
}

// GetByEntityAndUser находит диалог пары (бизнес, пользователь)
func (r *chatRepository) GetByEntityAndUser(ctx context.Context, entityID, userID string) (*entity.Chat, error) {
	var chat entity.Chat
	filter := bson.M{"entity_id": entityID, "user_id": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&chat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return &chat, nil
}

// GetByUserID получает все диалоги пользователя, свежие сверху
func (r *chatRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find chats: %w", err)
	}
	defer cursor.Close(ctx)

	var chats []entity.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("failed to decode chats: %w", err)
	}

	return chats, nil
}

// RecordMessage обновляет сводку диалога после нового сообщения
func (r *chatRepository) RecordMessage(ctx context.Context, chatID, text string, at time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"last_message":    text,
			"last_message_at": at,
		},
		"$inc": bson.M{
			"unread_count": 1,
		},
	}

	return r.updateOne(ctx, chatID, update)
}

// ResetUnread сбрасывает счетчик непрочитанных в ноль
func (r *chatRepository) ResetUnread(ctx context.Context, chatID string) error {
	update := bson.M{
		"$set": bson.M{
			"unread_count": 0,
		},
	}

	return r.updateOne(ctx, chatID, update)
}

func (r *chatRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update chat: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrChatNotFound
	}

	return nil
}
