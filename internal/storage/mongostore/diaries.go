package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

func (s *Store) CreateDiary(ctx context.Context, d *models.Diary) error {
	if d.ID == "" {
		d.ID = primitive.NewObjectID().Hex()
	}
	_, err := s.diaries().InsertOne(ctx, d)
	return translate(err)
}

func (s *Store) DiaryByID(ctx context.Context, id string) (*models.Diary, error) {
	var d models.Diary
	err := s.diaries().FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// ListDiaries pushes the visibility rule down into the query: an admin
// viewer gets no privacy clause, everyone else gets
// (public OR own), with "own" dropped for anonymous viewers.
func (s *Store) ListDiaries(ctx context.Context, f storage.DiaryFilter) ([]*models.Diary, error) {
	filter := bson.M{}
	if !f.ViewerIsAdmin {
		if f.ViewerID != "" {
			filter["$or"] = bson.A{
				bson.M{"is_private": models.DiaryPublic},
				bson.M{"user_id": f.ViewerID},
			}
		} else {
			filter["is_private"] = models.DiaryPublic
		}
	}
	if f.Mood != "" && f.Mood != "all" {
		filter["mood"] = f.Mood
	}

	// Insertion order comes from the generated object id, not the display
	// date string.
	order := -1
	if f.Oldest {
		order = 1
	}

	cursor, err := s.diaries().Find(ctx, filter, options.Find().SetSort(bson.M{"_id": order}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	diaries := []*models.Diary{}
	if err := cursor.All(ctx, &diaries); err != nil {
		return nil, translate(err)
	}
	return diaries, nil
}

func (s *Store) UpdateDiary(ctx context.Context, id string, upd storage.DiaryUpdate) error {
	res, err := s.diaries().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"content":    upd.Content,
		"mood":       upd.Mood,
		"is_private": upd.IsPrivate,
	}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteDiary cascades to the diary's comments and likes. The three deletes
// are separate round-trips; a failure mid-sequence leaves orphans behind.
func (s *Store) DeleteDiary(ctx context.Context, id string) error {
	res, err := s.diaries().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}

	if _, err := s.comments().DeleteMany(ctx, bson.M{"diary_id": id}); err != nil {
		return translate(err)
	}
	_, err = s.likes().DeleteMany(ctx, bson.M{"diary_id": id})
	return translate(err)
}

func (s *Store) CountDiaries(ctx context.Context) (int64, error) {
	n, err := s.diaries().CountDocuments(ctx, bson.M{})
	return n, translate(err)
}

func (s *Store) CountDiariesByUser(ctx context.Context, userID string) (int64, error) {
	n, err := s.diaries().CountDocuments(ctx, bson.M{"user_id": userID})
	return n, translate(err)
}
