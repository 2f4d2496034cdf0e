package models

import "time"

// Notice is an admin announcement. Only the most recently created notice is
// ever surfaced to clients.
type Notice struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Content string `bson:"content" json:"content"`
	Date    string `bson:"date" json:"date"`
}
