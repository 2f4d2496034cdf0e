package services

import (
	"context"
	"time"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

// RecommendService stores and lists user recommendations by category tag.
type RecommendService struct {
	store storage.Store
}

func NewRecommendService(store storage.Store) *RecommendService {
	return &RecommendService{store: store}
}

func (s *RecommendService) Create(ctx context.Context, writer *models.User, content, image, tag string) (*models.Recommendation, error) {
	if content == "" {
		return nil, ErrValidation
	}

	now := time.Now()
	rec := &models.Recommendation{
		CreatedAt: now,
		UserID:    writer.ID,
		Content:   content,
		Image:     image,
		Tag:       tag,
		Date:      DisplayDate(now),
	}
	if err := s.store.CreateRecommendation(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns recommendations newest-first, optionally restricted to a
// tag, decorated with writer nickname and avatar.
func (s *RecommendService) List(ctx context.Context, tag string) ([]models.DecoratedRecommendation, error) {
	recs, err := s.store.ListRecommendations(ctx, tag)
	if err != nil {
		return nil, err
	}

	writerIDs := make([]string, len(recs))
	for i, rec := range recs {
		writerIDs[i] = rec.UserID
	}
	writers, err := resolveWriters(ctx, s.store, writerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.DecoratedRecommendation, len(recs))
	for i, rec := range recs {
		nickname, avatar := writerSummary(writers, rec.UserID)
		out[i] = models.DecoratedRecommendation{
			Recommendation: *rec,
			WriterNickname: nickname,
			WriterAvatar:   avatar,
		}
	}
	return out, nil
}
