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

// HistoryRepository is the append-only audit trail contract. There is
// deliberately no update or delete.
type HistoryRepository interface {
	Insert(ctx context.Context, entry *models.HistoryEntry) error
	// FindByTask returns a task's audit trail in creation order.
	FindByTask(ctx context.Context, taskID string) ([]models.HistoryEntry, error)
	// FindAll returns the whole audit trail, newest first.
	FindAll(ctx context.Context) ([]models.HistoryEntry, error)
}

type MongoHistoryRepository struct {
	collection *mongo.Collection
}

func NewMongoHistoryRepository(collection *mongo.Collection) *MongoHistoryRepository {
	return &MongoHistoryRepository{collection: collection}
}

func (r *MongoHistoryRepository) Insert(ctx context.Context, entry *models.HistoryEntry) error {
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %v", err)
	}
	entry.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoHistoryRepository) FindByTask(ctx context.Context, taskID string) ([]models.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, bson.M{"task_id": taskID}, opts)
}

func (r *MongoHistoryRepository) FindAll(ctx context.Context) ([]models.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *MongoHistoryRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve history: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var entry models.HistoryEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %v", err)
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return entries, nil
}
