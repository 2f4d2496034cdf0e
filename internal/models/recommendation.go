package models

import "time"

// Recommendation is a user-submitted tip (book, music, place, ...) browsed
// by category tag.
type Recommendation struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	UserID  string `bson:"user_id" json:"user_id"`
	Content string `bson:"content" json:"content"`
	Image   string `bson:"image,omitempty" json:"image,omitempty"`
	Tag     string `bson:"tag" json:"tag"`
	Date    string `bson:"date" json:"date"`
}

type DecoratedRecommendation struct {
	Recommendation
	WriterNickname string `json:"writer_nickname"`
	WriterAvatar   string `json:"writer_avatar,omitempty"`
}
