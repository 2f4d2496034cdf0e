package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

func (s *Store) CreateNotice(ctx context.Context, n *models.Notice) error {
	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}
	_, err := s.notices().InsertOne(ctx, n)
	return translate(err)
}

// LatestNotice returns only the most recently created notice; older notices
// stay in the collection but are never surfaced.
func (s *Store) LatestNotice(ctx context.Context) (*models.Notice, error) {
	var n models.Notice
	err := s.notices().FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.M{"_id": -1})).Decode(&n)
	if err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (s *Store) DeleteNotice(ctx context.Context, id string) error {
	res, err := s.notices().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CreateRecommendation(ctx context.Context, rec *models.Recommendation) error {
	if rec.ID == "" {
		rec.ID = primitive.NewObjectID().Hex()
	}
	_, err := s.recommendations().InsertOne(ctx, rec)
	return translate(err)
}

func (s *Store) ListRecommendations(ctx context.Context, tag string) ([]*models.Recommendation, error) {
	filter := bson.M{}
	if tag != "" && tag != "all" {
		filter["tag"] = tag
	}

	cursor, err := s.recommendations().Find(ctx, filter,
		options.Find().SetSort(bson.M{"_id": -1}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	recs := []*models.Recommendation{}
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, translate(err)
	}
	return recs, nil
}
