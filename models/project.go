package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"nombre" json:"nombre"`
	Description string             `bson:"descripcion" json:"descripcion"`
}

// ProjectUpdate is the partial-update payload for projects. Nil pointers
// leave the stored field unchanged.
type ProjectUpdate struct {
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
}

// Option is an identifier + display name pair for form select lists.
type Option struct {
	ID   string `json:"_id"`
	Name string `json:"nombre"`
}
