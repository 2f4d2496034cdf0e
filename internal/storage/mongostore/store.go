// Package mongostore is the MongoDB-backed implementation of storage.Store.
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) users() *mongo.Collection           { return s.db.Collection("users") }
func (s *Store) diaries() *mongo.Collection         { return s.db.Collection("diaries") }
func (s *Store) comments() *mongo.Collection        { return s.db.Collection("comments") }
func (s *Store) likes() *mongo.Collection           { return s.db.Collection("likes") }
func (s *Store) questions() *mongo.Collection       { return s.db.Collection("questions") }
func (s *Store) answers() *mongo.Collection         { return s.db.Collection("answers") }
func (s *Store) notices() *mongo.Collection         { return s.db.Collection("notices") }
func (s *Store) recommendations() *mongo.Collection { return s.db.Collection("recommendations") }

// EnsureIndexes creates the uniqueness constraints the application relies on:
// one account per username, one like per (diary, user), one answer per
// (question, user).
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	if _, err := s.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	if _, err := s.likes().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "diary_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	if _, err := s.answers().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "question_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	_, err := s.diaries().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

// translate maps driver errors onto the storage sentinel errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return storage.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return storage.ErrDuplicate
	default:
		return err
	}
}
