package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biashara/users-service/internal/app/users/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrUserNotFound = errors.New("user not found")
)

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository создает новый репозиторий профилей
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

// Upsert создает или обновляет профиль
// created_at выставляется только при первой записи
func (r *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	user.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"email":      user.Email,
			"name":       user.Name,
			"avatar":     user.Avatar,
			"updated_at": user.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// GetByID получает профиль по ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
