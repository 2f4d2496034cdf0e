package models

import "time"

// Question is a daily prompt shown to every user.
type Question struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	Text string `bson:"text" json:"text"`
	Date string `bson:"date" json:"date"` // display string, e.g. "2026. 08. 29"
}

// Answer belongs to exactly one question and one user. A resubmission for
// the same (question, user) pair overwrites content and date.
type Answer struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`

	QuestionID string `bson:"question_id" json:"question_id"`
	UserID     string `bson:"user_id" json:"user_id"`
	Content    string `bson:"content" json:"content"`
	Date       string `bson:"date" json:"date"`
}

type DecoratedAnswer struct {
	Answer
	WriterNickname string `json:"writer_nickname"`
	WriterAvatar   string `json:"writer_avatar,omitempty"`
}

// QuestionHistoryItem pairs a question with the user's own answer, if any.
// Other users' answers never appear here.
type QuestionHistoryItem struct {
	Question Question `json:"question"`
	Answered bool     `json:"answered"`
	Answer   string   `json:"answer,omitempty"`
	Date     string   `json:"date,omitempty"`
}
