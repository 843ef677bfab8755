package repositories

import (
	"context"
	"fmt"

	"github.com/raymundoht/Task-Manager/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepository interface {
	Insert(ctx context.Context, comment *models.Comment) error
	// FindByTask returns the comments for a task, newest first.
	FindByTask(ctx context.Context, taskID string) ([]models.Comment, error)
}

type MongoCommentRepository struct {
	collection *mongo.Collection
}

func NewMongoCommentRepository(collection *mongo.Collection) *MongoCommentRepository {
	return &MongoCommentRepository{collection: collection}
}

func (r *MongoCommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %v", err)
	}
	comment.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoCommentRepository) FindByTask(ctx context.Context, taskID string) ([]models.Comment, error) {
	var comments []models.Comment
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comments: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var comment models.Comment
		if err := cursor.Decode(&comment); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %v", err)
		}
		comments = append(comments, comment)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return comments, nil
}
