package repositories

import (
	"context"
	"fmt"
	"regexp"

	"github.com/raymundoht/Task-Manager/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepository is the task collection contract. FindByID returns
// (nil, nil) when no task matches; UpdateFields and Delete report
// whether a record was matched instead of raising an error for misses.
type TaskRepository interface {
	Insert(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	// FindAll returns tasks in the store's natural iteration order.
	FindAll(ctx context.Context) ([]models.Task, error)
	// FindAllByNewest returns tasks sorted by _id descending.
	FindAllByNewest(ctx context.Context) ([]models.Task, error)
	Search(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Count(ctx context.Context, filter models.StatFilter) (int64, error)
}

type MongoTaskRepository struct {
	collection *mongo.Collection
}

func NewMongoTaskRepository(collection *mongo.Collection) *MongoTaskRepository {
	return &MongoTaskRepository{collection: collection}
}

func (r *MongoTaskRepository) Insert(ctx context.Context, task *models.Task) error {
	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to insert task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %v", err)
	}
	return &task, nil
}

func (r *MongoTaskRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (bool, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("failed to update task: %v", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %v", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *MongoTaskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *MongoTaskRepository) FindAllByNewest(ctx context.Context) ([]models.Task, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
}

func (r *MongoTaskRepository) Search(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	query := bson.M{}
	if filter.Text != "" {
		// QuoteMeta keeps the match a plain substring even when the
		// input contains regex metacharacters.
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Text), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"titulo": pattern},
			bson.M{"descripcion": pattern},
		}
	}
	if filter.State != "" {
		query["estado"] = filter.State
	}
	if filter.Priority != "" {
		query["prioridad"] = filter.Priority
	}
	if filter.ProjectID != "" {
		query["proyecto_id"] = filter.ProjectID
	}
	return r.find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
}

func (r *MongoTaskRepository) Count(ctx context.Context, filter models.StatFilter) (int64, error) {
	query := bson.M{}
	if filter.State != nil {
		query["estado"] = *filter.State
	}
	if filter.NotState != nil {
		query["estado"] = bson.M{"$ne": *filter.NotState}
	}
	if filter.Priority != nil {
		query["prioridad"] = *filter.Priority
	}
	if filter.DueBefore != nil {
		// $lt against a date only matches date-typed values, so tasks
		// with a null due date stay out of the count.
		query["fecha_vencimiento"] = bson.M{"$lt": *filter.DueBefore}
	}
	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %v", err)
	}
	return count, nil
}

func (r *MongoTaskRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Task, error) {
	var tasks []models.Task
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, query, opts)
	} else {
		cursor, err = r.collection.Find(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %v", err)
		}
		tasks = append(tasks, task)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return tasks, nil
}
