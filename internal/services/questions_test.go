package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage/inmemory"
)

func newTestQuestion(t *testing.T, store *inmemory.Store, text string) *models.Question {
	t.Helper()
	q := &models.Question{
		CreatedAt: time.Now(),
		Text:      text,
		Date:      DisplayDate(time.Now()),
	}
	require.NoError(t, store.CreateQuestion(context.Background(), q))
	return q
}

func TestSeedDefaultQuestion(t *testing.T) {
	store := inmemory.New()
	questions := NewQuestionService(store)
	ctx := context.Background()

	require.NoError(t, questions.SeedDefaultQuestion(ctx))
	listed, err := questions.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// Seeding again is a no-op once a question exists.
	require.NoError(t, questions.SeedDefaultQuestion(ctx))
	listed, err = questions.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSubmitAnswer_Overwrites(t *testing.T) {
	store := inmemory.New()
	questions := NewQuestionService(store)
	ctx := context.Background()

	alice := newTestUser(t, store, "alice", models.RoleUser)
	q := newTestQuestion(t, store, "오늘의 질문")

	_, err := questions.SubmitAnswer(ctx, q.ID, alice.ID, "first draft")
	require.NoError(t, err)
	_, err = questions.SubmitAnswer(ctx, q.ID, alice.ID, "final answer")
	require.NoError(t, err)

	answers, err := store.ListAnswers(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "final answer", answers[0].Content)
	assert.Equal(t, alice.ID, answers[0].UserID)
}

func TestSubmitAnswer_EmptyContent(t *testing.T) {
	store := inmemory.New()
	questions := NewQuestionService(store)

	alice := newTestUser(t, store, "alice", models.RoleUser)
	q := newTestQuestion(t, store, "오늘의 질문")

	_, err := questions.SubmitAnswer(context.Background(), q.ID, alice.ID, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAnswerHistory(t *testing.T) {
	store := inmemory.New()
	questions := NewQuestionService(store)
	ctx := context.Background()

	alice := newTestUser(t, store, "alice", models.RoleUser)
	bob := newTestUser(t, store, "bob", models.RoleUser)

	answered := newTestQuestion(t, store, "answered one")
	open := newTestQuestion(t, store, "open one")

	_, err := questions.SubmitAnswer(ctx, answered.ID, alice.ID, "my answer")
	require.NoError(t, err)
	// Bob's answer must not leak into Alice's history.
	_, err = questions.SubmitAnswer(ctx, open.ID, bob.ID, "someone else")
	require.NoError(t, err)

	history, err := questions.AnswerHistory(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	byID := make(map[string]models.QuestionHistoryItem, len(history))
	for _, item := range history {
		byID[item.Question.ID] = item
	}

	assert.True(t, byID[answered.ID].Answered)
	assert.Equal(t, "my answer", byID[answered.ID].Answer)
	assert.False(t, byID[open.ID].Answered)
	assert.Empty(t, byID[open.ID].Answer)
}

func TestListAnswers_Decoration(t *testing.T) {
	store := inmemory.New()
	questions := NewQuestionService(store)
	ctx := context.Background()

	alice := newTestUser(t, store, "alice", models.RoleUser)
	q := newTestQuestion(t, store, "오늘의 질문")

	_, err := questions.SubmitAnswer(ctx, q.ID, alice.ID, "hello")
	require.NoError(t, err)

	decorated, err := questions.ListAnswers(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, decorated, 1)
	assert.Equal(t, "alice", decorated[0].WriterNickname)
	assert.Equal(t, "hello", decorated[0].Content)
}
