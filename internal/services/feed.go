package services

import (
	"context"
	"time"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

// FeedOptions are the viewer-supplied feed filters.
type FeedOptions struct {
	Mood string // "" or "all": no mood restriction
	Sort string // "oldest" reverses the default newest-first order
}

// FeedService assembles the diary feed: visibility filtering, writer
// decoration, and per-viewer like state.
type FeedService struct {
	store  storage.Store
	events *EventPublisher
}

func NewFeedService(store storage.Store, events *EventPublisher) *FeedService {
	return &FeedService{store: store, events: events}
}

// ListDiaries returns every diary the viewer may see, decorated. A nil
// viewer is anonymous and sees public entries only; an admin viewer sees
// everything including private entries of other users.
func (s *FeedService) ListDiaries(ctx context.Context, viewer *models.User, opts FeedOptions) ([]models.DecoratedDiary, error) {
	filter := storage.DiaryFilter{
		Mood:   opts.Mood,
		Oldest: opts.Sort == "oldest",
	}
	if viewer != nil {
		filter.ViewerID = viewer.ID
		filter.ViewerIsAdmin = viewer.IsAdmin()
	}

	diaries, err := s.store.ListDiaries(ctx, filter)
	if err != nil {
		return nil, err
	}

	diaryIDs := make([]string, len(diaries))
	writerIDs := make([]string, len(diaries))
	for i, d := range diaries {
		diaryIDs[i] = d.ID
		writerIDs[i] = d.UserID
	}

	writers, err := resolveWriters(ctx, s.store, writerIDs)
	if err != nil {
		return nil, err
	}
	likeCounts, err := s.store.LikeCountsByDiaryIDs(ctx, diaryIDs)
	if err != nil {
		return nil, err
	}
	likedByViewer := map[string]bool{}
	if viewer != nil {
		likedByViewer, err = s.store.LikedDiaryIDs(ctx, viewer.ID, diaryIDs)
		if err != nil {
			return nil, err
		}
	}

	feed := make([]models.DecoratedDiary, len(diaries))
	for i, d := range diaries {
		nickname, avatar := writerSummary(writers, d.UserID)
		feed[i] = models.DecoratedDiary{
			Diary:          *d,
			WriterNickname: nickname,
			WriterAvatar:   avatar,
			LikeCount:      likeCounts[d.ID],
			LikedByViewer:  likedByViewer[d.ID],
		}
	}
	return feed, nil
}

// CreateDiary stores a new entry for the writer and announces public
// entries on the feed event channel.
func (s *FeedService) CreateDiary(ctx context.Context, writer *models.User, content, mood, image string, isPrivate int) (*models.Diary, error) {
	if content == "" {
		return nil, ErrValidation
	}
	if isPrivate != models.DiaryPrivate {
		isPrivate = models.DiaryPublic
	}

	now := time.Now()
	diary := &models.Diary{
		CreatedAt: now,
		UserID:    writer.ID,
		Content:   content,
		Image:     image,
		Mood:      mood,
		IsPrivate: isPrivate,
		Date:      DisplayDate(now),
	}
	if err := s.store.CreateDiary(ctx, diary); err != nil {
		return nil, err
	}

	if diary.IsPrivate == models.DiaryPublic {
		s.events.Publish(ctx, FeedEvent{
			Type:           EventDiaryCreated,
			DiaryID:        diary.ID,
			WriterNickname: writer.Nickname,
			Mood:           diary.Mood,
		})
	}
	return diary, nil
}

// UpdateDiary edits content, mood, and privacy. Only the owner or an admin
// may edit.
func (s *FeedService) UpdateDiary(ctx context.Context, viewer *models.User, diaryID string, upd storage.DiaryUpdate) error {
	diary, err := s.store.DiaryByID(ctx, diaryID)
	if err != nil {
		if storage.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if diary.UserID != viewer.ID && !viewer.IsAdmin() {
		return ErrForbidden
	}
	if upd.IsPrivate != models.DiaryPrivate {
		upd.IsPrivate = models.DiaryPublic
	}
	return s.store.UpdateDiary(ctx, diaryID, upd)
}

// DeleteDiary removes the entry and cascades to its comments and likes.
// Only the owner or an admin may delete.
func (s *FeedService) DeleteDiary(ctx context.Context, viewer *models.User, diaryID string) error {
	diary, err := s.store.DiaryByID(ctx, diaryID)
	if err != nil {
		if storage.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if diary.UserID != viewer.ID && !viewer.IsAdmin() {
		return ErrForbidden
	}
	return s.store.DeleteDiary(ctx, diaryID)
}
