package repositories

import (
	"context"
	"fmt"

	"github.com/raymundoht/Task-Manager/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProjectRepository is the project collection contract. FindByID
// returns (nil, nil) for a miss.
type ProjectRepository interface {
	Insert(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindAll(ctx context.Context) ([]models.Project, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type MongoProjectRepository struct {
	collection *mongo.Collection
}

func NewMongoProjectRepository(collection *mongo.Collection) *MongoProjectRepository {
	return &MongoProjectRepository{collection: collection}
}

func (r *MongoProjectRepository) Insert(ctx context.Context, project *models.Project) error {
	result, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return fmt.Errorf("failed to insert project: %v", err)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve project: %v", err)
	}
	return &project, nil
}

func (r *MongoProjectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var project models.Project
		if err := cursor.Decode(&project); err != nil {
			return nil, fmt.Errorf("failed to decode project: %v", err)
		}
		projects = append(projects, project)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return projects, nil
}

func (r *MongoProjectRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (bool, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("failed to update project: %v", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %v", err)
	}
	return result.DeletedCount > 0, nil
}
