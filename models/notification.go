package models

import "time"

type Notification struct {
	ID        string    `cassandra:"id" json:"_id"`
	UserID    string    `cassandra:"user_id" json:"user_id"`
	Message   string    `cassandra:"message" json:"message"`
	CreatedAt time.Time `cassandra:"created_at" json:"created_at"`
}
