package repository

import (
	"context"
	"fmt"

	"biashara/background-worker-service/internal/app/background-worker/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает новый репозиторий отзывов поверх MongoDB
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{
		collection: db.Collection("reviews"),
	}
}

// GetPublishedRatings возвращает оценки всех published отзывов бизнеса.
// В рейтинг входят только опубликованные отзывы: pending и hidden исключены
func (r *reviewRepository) GetPublishedRatings(ctx context.Context, entityID string) ([]int, error) {
	filter := bson.M{
		"entity_id":         entityID,
		"moderation_status": entity.StatusPublished,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find published reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []int
	for cursor.Next(ctx) {
		var review entity.Review
		if err := cursor.Decode(&review); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		ratings = append(ratings, review.Rating)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return ratings, nil
}
