package models

import "time"

type Comment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	DiaryID string `bson:"diary_id" json:"diary_id"`
	UserID  string `bson:"user_id" json:"user_id"`
	Content string `bson:"content" json:"content"`
	Date    string `bson:"date" json:"date"`
}

type DecoratedComment struct {
	Comment
	WriterNickname string `json:"writer_nickname"`
	WriterAvatar   string `json:"writer_avatar,omitempty"`
}
