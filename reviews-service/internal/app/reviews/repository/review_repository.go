package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biashara/reviews-service/internal/app/reviews/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrReviewNotFound = errors.New("review not found")
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает новый репозиторий отзывов
// Автоматически создает индексы по entity_id и user_id
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Индекс по entity_id: выборка отзывов бизнеса для рейтинга
	entityIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_id", Value: 1},
		},
		Options: options.Index().SetName("entity_id_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, entityIndex); err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		fmt.Printf("Warning: failed to create index on entity_id: %v\n", err)
	}

	// Индекс по user_id: история автора для контекста модерации
	userIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetName("user_id_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, userIndex); err != nil {
		fmt.Printf("Warning: failed to create index on user_id: %v\n", err)
	}

	return &reviewRepository{
		collection: collection,
	}
}

// Create сохраняет новый отзыв
// ID формируется в service layer, _id в MongoDB совпадает с ним
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByID получает отзыв по ID
func (r *reviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	var review entity.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

// GetByEntityID получает все отзывы бизнеса независимо от статуса
func (r *reviewRepository) GetByEntityID(ctx context.Context, entityID string) ([]entity.Review, error) {
	return r.find(ctx, bson.M{"entity_id": entityID})
}

// GetPublishedByEntityID получает только published отзывы бизнеса
// Именно это множество входит в агрегированный рейтинг
func (r *reviewRepository) GetPublishedByEntityID(ctx context.Context, entityID string) ([]entity.Review, error) {
	return r.find(ctx, bson.M{
		"entity_id":         entityID,
		"moderation_status": entity.StatusPublished,
	})
}

// GetByUserID получает все отзывы пользователя
func (r *reviewRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Review, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// CountByUserID считает все отзывы пользователя
func (r *reviewRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count user reviews: %w", err)
	}
	return count, nil
}

// CountFlaggedByUserID считает отзывы пользователя с непустыми флагами модерации
func (r *reviewRepository) CountFlaggedByUserID(ctx context.Context, userID string) (int64, error) {
	filter := bson.M{
		"user_id":            userID,
		"moderation_flags.0": bson.M{"$exists": true},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count flagged reviews: %w", err)
	}
	return count, nil
}

// MarkChecked очищает флаги и ставит отметку времени проверки
func (r *reviewRepository) MarkChecked(ctx context.Context, id string, checkedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"moderation_flags":      []string{},
			"moderation_checked_at": checkedAt,
		},
	}

	return r.updateOne(ctx, id, update)
}

// Flag переводит отзыв в pending и сохраняет флаги модерации
func (r *reviewRepository) Flag(ctx context.Context, id string, flags []string, checkedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"moderation_status":     entity.StatusPending,
			"moderation_flags":      flags,
			"moderation_checked_at": checkedAt,
		},
	}

	return r.updateOne(ctx, id, update)
}

// SetStatus меняет только статус модерации (административное действие)
func (r *reviewRepository) SetStatus(ctx context.Context, id string, status string) error {
	update := bson.M{
		"$set": bson.M{
			"moderation_status": status,
		},
	}

	return r.updateOne(ctx, id, update)
}

func (r *reviewRepository) find(ctx context.Context, filter bson.M) ([]entity.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrReviewNotFound
	}

	return nil
}
