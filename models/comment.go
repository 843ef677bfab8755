package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TaskID    string             `bson:"task_id" json:"task_id"`
	Body      string             `bson:"comentario" json:"comentario"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
