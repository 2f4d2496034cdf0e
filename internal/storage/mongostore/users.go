package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	_, err := s.users().InsertOne(ctx, u)
	return translate(err)
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.users().FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UsersByIDs resolves all referenced writers in a single $in query so
// decoration does not pay one round-trip per feed item.
func (s *Store) UsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := s.users().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, translate(err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd storage.UserUpdate) error {
	set := bson.M{
		"nickname": upd.Nickname,
		"bio":      upd.Bio,
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}

	res, err := s.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	cursor, err := s.users().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users().CountDocuments(ctx, bson.M{})
	return n, translate(err)
}
