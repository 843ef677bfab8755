package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions recorded for task mutations.
const (
	ActionCreated = "creación"
	ActionUpdated = "actualización"
	ActionDeleted = "eliminación"
)

// HistoryEntry is one immutable audit record. Entries are append-only;
// nothing in the service mutates or deletes them.
type HistoryEntry struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"_id"`
	TaskID    string                 `bson:"task_id" json:"task_id"`
	Action    string                 `bson:"action" json:"action"`
	Details   map[string]interface{} `bson:"details" json:"details"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
}
