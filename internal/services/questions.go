package services

import (
	"context"
	"log"
	"time"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

const defaultQuestionText = "오늘 가장 기억에 남는 순간은 무엇인가요?"

// QuestionService serves the rotating daily question and its answers.
type QuestionService struct {
	store storage.Store
}

func NewQuestionService(store storage.Store) *QuestionService {
	return &QuestionService{store: store}
}

// SeedDefaultQuestion creates one question for today when the collection is
// empty, so a fresh deployment always has a current question.
func (s *QuestionService) SeedDefaultQuestion(ctx context.Context) error {
	n, err := s.store.CountQuestions(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now()
	q := &models.Question{
		CreatedAt: now,
		Text:      defaultQuestionText,
		Date:      DisplayDate(now),
	}
	if err := s.store.CreateQuestion(ctx, q); err != nil {
		return err
	}
	log.Println("Seeded default daily question")
	return nil
}

// ListQuestions returns all questions, newest date first.
func (s *QuestionService) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	return s.store.ListQuestions(ctx)
}

// AnswerHistory reports, for every question, whether the user has answered
// it and with what. Other users' answers never appear here.
func (s *QuestionService) AnswerHistory(ctx context.Context, userID string) ([]models.QuestionHistoryItem, error) {
	questions, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]models.QuestionHistoryItem, len(questions))
	for i, q := range questions {
		item := models.QuestionHistoryItem{Question: *q}
		answer, err := s.store.AnswerFor(ctx, q.ID, userID)
		switch {
		case err == nil:
			item.Answered = true
			item.Answer = answer.Content
			item.Date = answer.Date
		case storage.IsNotFound(err):
			// explicit "no answer" marker
		default:
			return nil, err
		}
		history[i] = item
	}
	return history, nil
}

// SubmitAnswer upserts the user's answer for a question: a resubmission
// overwrites content and date, never creates a second record.
func (s *QuestionService) SubmitAnswer(ctx context.Context, questionID, userID, content string) (*models.Answer, error) {
	if content == "" {
		return nil, ErrValidation
	}

	now := time.Now()
	answer := &models.Answer{
		CreatedAt:  now,
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
		Date:       DisplayDate(now),
	}
	if err := s.store.UpsertAnswer(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// ListAnswers returns all answers to a question, decorated with writer
// nickname and avatar.
func (s *QuestionService) ListAnswers(ctx context.Context, questionID string) ([]models.DecoratedAnswer, error) {
	answers, err := s.store.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}

	writerIDs := make([]string, len(answers))
	for i, a := range answers {
		writerIDs[i] = a.UserID
	}
	writers, err := resolveWriters(ctx, s.store, writerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.DecoratedAnswer, len(answers))
	for i, a := range answers {
		nickname, avatar := writerSummary(writers, a.UserID)
		out[i] = models.DecoratedAnswer{
			Answer:         *a,
			WriterNickname: nickname,
			WriterAvatar:   avatar,
		}
	}
	return out, nil
}
