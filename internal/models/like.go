package models

import "time"

// Like is a pure join record: one per (diary, user), enforced by a unique
// index in the store.
type Like struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	DiaryID string `bson:"diary_id" json:"diary_id"`
	UserID  string `bson:"user_id" json:"user_id"`
}
