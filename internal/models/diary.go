package models

import "time"

// Privacy flag values for a diary entry. Kept as an integer flag (0/1)
// to match the stored representation the frontend already sends.
const (
	DiaryPublic  = 0
	DiaryPrivate = 1
)

// Diary is a single journal entry. The writer is referenced by the stable
// user id; the username is resolved at read time.
type Diary struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	UserID    string `bson:"user_id" json:"user_id"`
	Content   string `bson:"content" json:"content"`
	Image     string `bson:"image,omitempty" json:"image,omitempty"`
	Mood      string `bson:"mood" json:"mood"`
	IsPrivate int    `bson:"is_private" json:"is_private"`
	Date      string `bson:"date" json:"date"` // display string, e.g. "2026. 08. 29"
}

// DecoratedDiary is a Diary augmented with writer profile summary and
// like aggregation for the requesting viewer.
type DecoratedDiary struct {
	Diary
	WriterNickname string `json:"writer_nickname"`
	WriterAvatar   string `json:"writer_avatar,omitempty"`
	LikeCount      int64  `json:"like_count"`
	LikedByViewer  bool   `json:"liked_by_viewer"`
}
