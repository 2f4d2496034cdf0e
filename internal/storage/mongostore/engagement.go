package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
)

// ToggleLike removes the like for (diaryID, userID) if present, otherwise
// inserts one. The unique index on the pair absorbs the check-then-act race:
// when two toggles insert concurrently the loser's duplicate-key error is
// folded into "liked".
func (s *Store) ToggleLike(ctx context.Context, diaryID, userID string) (bool, error) {
	res, err := s.likes().DeleteOne(ctx, bson.M{"diary_id": diaryID, "user_id": userID})
	if err != nil {
		return false, translate(err)
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	like := models.Like{
		ID:        primitive.NewObjectID().Hex(),
		CreatedAt: time.Now(),
		DiaryID:   diaryID,
		UserID:    userID,
	}
	if _, err := s.likes().InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, translate(err)
	}
	return true, nil
}

// LikeCountsByDiaryIDs aggregates like totals for a page of diaries in one
// round-trip.
func (s *Store) LikeCountsByDiaryIDs(ctx context.Context, diaryIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(diaryIDs))
	if len(diaryIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"diary_id": bson.M{"$in": diaryIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$diary_id", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := s.likes().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		DiaryID string `bson:"_id"`
		Count   int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, translate(err)
	}
	for _, row := range rows {
		counts[row.DiaryID] = row.Count
	}
	return counts, nil
}

// LikedDiaryIDs reports which of diaryIDs the given user has liked.
func (s *Store) LikedDiaryIDs(ctx context.Context, userID string, diaryIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(diaryIDs))
	if userID == "" || len(diaryIDs) == 0 {
		return liked, nil
	}

	cursor, err := s.likes().Find(ctx, bson.M{
		"user_id":  userID,
		"diary_id": bson.M{"$in": diaryIDs},
	})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var likes []models.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, translate(err)
	}
	for _, l := range likes {
		liked[l.DiaryID] = true
	}
	return liked, nil
}

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	_, err := s.comments().InsertOne(ctx, c)
	return translate(err)
}

// ListComments returns a diary's comments oldest-first.
func (s *Store) ListComments(ctx context.Context, diaryID string) ([]*models.Comment, error) {
	cursor, err := s.comments().Find(ctx, bson.M{"diary_id": diaryID},
		options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	comments := []*models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, translate(err)
	}
	return comments, nil
}
