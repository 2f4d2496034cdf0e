package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

func (s *Store) CreateQuestion(ctx context.Context, q *models.Question) error {
	if q.ID == "" {
		q.ID = primitive.NewObjectID().Hex()
	}
	_, err := s.questions().InsertOne(ctx, q)
	return translate(err)
}

func (s *Store) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	cursor, err := s.questions().Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	questions := []*models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, translate(err)
	}
	return questions, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.questions().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CountQuestions(ctx context.Context) (int64, error) {
	n, err := s.questions().CountDocuments(ctx, bson.M{})
	return n, translate(err)
}

// UpsertAnswer is a single atomic upsert keyed on (question, user). The
// unique index on the pair backs it up: if two fresh submissions race, the
// loser's duplicate-key error is resolved by retrying as an update.
func (s *Store) UpsertAnswer(ctx context.Context, a *models.Answer) error {
	filter := bson.M{"question_id": a.QuestionID, "user_id": a.UserID}
	update := bson.M{
		"$set": bson.M{"content": a.Content, "date": a.Date},
		"$setOnInsert": bson.M{
			"_id":         primitive.NewObjectID().Hex(),
			"question_id": a.QuestionID,
			"user_id":     a.UserID,
			"created_at":  time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	err := s.answers().FindOneAndUpdate(ctx, filter, update, opts).Decode(a)
	if mongo.IsDuplicateKeyError(err) {
		// Lost an upsert race; the record exists now, so plain update.
		err = s.answers().FindOneAndUpdate(ctx, filter,
			bson.M{"$set": bson.M{"content": a.Content, "date": a.Date}},
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(a)
	}
	return translate(err)
}

func (s *Store) AnswerFor(ctx context.Context, questionID, userID string) (*models.Answer, error) {
	var a models.Answer
	err := s.answers().FindOne(ctx, bson.M{"question_id": questionID, "user_id": userID}).Decode(&a)
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) ListAnswers(ctx context.Context, questionID string) ([]*models.Answer, error) {
	cursor, err := s.answers().Find(ctx, bson.M{"question_id": questionID},
		options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	answers := []*models.Answer{}
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, translate(err)
	}
	return answers, nil
}

func (s *Store) CountAnswersByUser(ctx context.Context, userID string) (int64, error) {
	n, err := s.answers().CountDocuments(ctx, bson.M{"user_id": userID})
	return n, translate(err)
}
