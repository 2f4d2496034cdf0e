package services

import (
	"context"
	"strings"
	"time"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

// EngagementService covers likes and comments on diary entries.
type EngagementService struct {
	store  storage.Store
	events *EventPublisher
}

func NewEngagementService(store storage.Store, events *EventPublisher) *EngagementService {
	return &EngagementService{store: store, events: events}
}

// ToggleLike flips the like state for (diary, user) and reports the new
// state. Calling it twice restores the original state and count.
func (s *EngagementService) ToggleLike(ctx context.Context, diaryID, userID string) (bool, error) {
	if _, err := s.store.DiaryByID(ctx, diaryID); err != nil {
		if storage.IsNotFound(err) {
			return false, ErrNotFound
		}
		return false, err
	}
	return s.store.ToggleLike(ctx, diaryID, userID)
}

// AddComment appends a comment. Presence is the only content validation.
func (s *EngagementService) AddComment(ctx context.Context, diaryID string, writer *models.User, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrValidation
	}
	if _, err := s.store.DiaryByID(ctx, diaryID); err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	comment := &models.Comment{
		CreatedAt: now,
		DiaryID:   diaryID,
		UserID:    writer.ID,
		Content:   content,
		Date:      DisplayDate(now),
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, FeedEvent{
		Type:           EventCommentCreated,
		DiaryID:        diaryID,
		WriterNickname: writer.Nickname,
	})
	return comment, nil
}

// ListComments returns a diary's comments oldest-first, each decorated with
// the writer's nickname and avatar.
func (s *EngagementService) ListComments(ctx context.Context, diaryID string) ([]models.DecoratedComment, error) {
	comments, err := s.store.ListComments(ctx, diaryID)
	if err != nil {
		return nil, err
	}

	writerIDs := make([]string, len(comments))
	for i, c := range comments {
		writerIDs[i] = c.UserID
	}
	writers, err := resolveWriters(ctx, s.store, writerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.DecoratedComment, len(comments))
	for i, c := range comments {
		nickname, avatar := writerSummary(writers, c.UserID)
		out[i] = models.DecoratedComment{
			Comment:        *c,
			WriterNickname: nickname,
			WriterAvatar:   avatar,
		}
	}
	return out, nil
}
