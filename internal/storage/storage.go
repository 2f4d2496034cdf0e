// Package storage defines the persistence interface for all Girok
// collections. Two implementations exist: mongostore (production) and
// inmemory (tests).
package storage

import (
	"context"
	"errors"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicate is returned when a write violates a uniqueness
	// constraint (username, or one like per diary per user).
	ErrDuplicate = errors.New("storage: duplicate key")
)

// IsDuplicate reports whether err is a uniqueness-constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// DiaryFilter selects diary entries for the feed.
//
// Visibility: when ViewerIsAdmin is set, every diary matches regardless of
// privacy. Otherwise a diary matches when it is public or owned by ViewerID
// (ViewerID == "" means an anonymous viewer: public only).
type DiaryFilter struct {
	ViewerID      string
	ViewerIsAdmin bool
	Mood          string // "" or "all" means no mood restriction
	Oldest        bool   // default is newest-first by insertion order
}

// UserUpdate carries profile fields to overwrite. Nickname and Bio are
// always written; Avatar only when non-nil.
type UserUpdate struct {
	Nickname string
	Bio      string
	Avatar   *string
}

// DiaryUpdate carries the editable fields of a diary entry.
type DiaryUpdate struct {
	Content   string
	Mood      string
	IsPrivate int
}

// Store is the persistence boundary for every collection. Implementations
// generate record ids on insert and fill them into the passed model.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	// UsersByIDs batch-resolves users for decoration; missing ids are
	// simply absent from the result map.
	UsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	UpdateUser(ctx context.Context, id string, upd UserUpdate) error
	ListUsers(ctx context.Context) ([]*models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Diaries
	CreateDiary(ctx context.Context, d *models.Diary) error
	DiaryByID(ctx context.Context, id string) (*models.Diary, error)
	ListDiaries(ctx context.Context, f DiaryFilter) ([]*models.Diary, error)
	UpdateDiary(ctx context.Context, id string, upd DiaryUpdate) error
	// DeleteDiary removes the diary and every comment and like that
	// references it. The cascade is multi-step and not transactional.
	DeleteDiary(ctx context.Context, id string) error
	CountDiaries(ctx context.Context) (int64, error)
	CountDiariesByUser(ctx context.Context, userID string) (int64, error)

	// Likes
	// ToggleLike flips the like state for (diaryID, userID) and reports
	// the resulting state. The unique index on the pair makes concurrent
	// toggles converge instead of erroring.
	ToggleLike(ctx context.Context, diaryID, userID string) (bool, error)
	LikeCountsByDiaryIDs(ctx context.Context, diaryIDs []string) (map[string]int64, error)
	LikedDiaryIDs(ctx context.Context, userID string, diaryIDs []string) (map[string]bool, error)

	// Comments
	CreateComment(ctx context.Context, c *models.Comment) error
	ListComments(ctx context.Context, diaryID string) ([]*models.Comment, error)

	// Questions
	CreateQuestion(ctx context.Context, q *models.Question) error
	ListQuestions(ctx context.Context) ([]*models.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
	CountQuestions(ctx context.Context) (int64, error)

	// Answers
	// UpsertAnswer updates content and date in place when an answer for
	// (a.QuestionID, a.UserID) exists, and inserts otherwise. Atomic in
	// the mongo implementation (single upsert, unique index on the pair).
	UpsertAnswer(ctx context.Context, a *models.Answer) error
	AnswerFor(ctx context.Context, questionID, userID string) (*models.Answer, error)
	ListAnswers(ctx context.Context, questionID string) ([]*models.Answer, error)
	CountAnswersByUser(ctx context.Context, userID string) (int64, error)

	// Notices
	CreateNotice(ctx context.Context, n *models.Notice) error
	LatestNotice(ctx context.Context) (*models.Notice, error)
	DeleteNotice(ctx context.Context, id string) error

	// Recommendations
	CreateRecommendation(ctx context.Context, rec *models.Recommendation) error
	// ListRecommendations returns newest-first; tag "" or "all" matches
	// every entry.
	ListRecommendations(ctx context.Context, tag string) ([]*models.Recommendation, error)
}
