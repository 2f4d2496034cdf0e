package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage/inmemory"
)

func TestUserDetail_Redaction(t *testing.T) {
	store := inmemory.New()
	identity := NewIdentityService(store)
	admin := NewAdminService(store)
	feed := NewFeedService(store, nil)
	questions := NewQuestionService(store)
	ctx := context.Background()

	alice, err := identity.Register(ctx, "alice", "secret", "203.0.113.7")
	require.NoError(t, err)

	_, err = feed.CreateDiary(ctx, alice, "entry", "calm", "", models.DiaryPublic)
	require.NoError(t, err)
	q := newTestQuestion(t, store, "오늘의 질문")
	_, err = questions.SubmitAnswer(ctx, q.ID, alice.ID, "answer")
	require.NoError(t, err)

	// Non-admin viewer gets the public fields only.
	detail, err := admin.UserDetail(ctx, "alice", false)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.Username)
	assert.Empty(t, detail.PasswordHash)
	assert.Empty(t, detail.SignupIP)
	assert.Nil(t, detail.CreatedAt)
	assert.Nil(t, detail.DiaryCount)

	// Admin viewer gets the full record with activity counts.
	detail, err = admin.UserDetail(ctx, "alice", true)
	require.NoError(t, err)
	assert.NotEmpty(t, detail.PasswordHash)
	assert.Equal(t, "203.0.113.7", detail.SignupIP)
	require.NotNil(t, detail.DiaryCount)
	assert.EqualValues(t, 1, *detail.DiaryCount)
	require.NotNil(t, detail.AnswerCount)
	assert.EqualValues(t, 1, *detail.AnswerCount)

	_, err = admin.UserDetail(ctx, "nobody", true)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestReserveQuestion(t *testing.T) {
	store := inmemory.New()
	admin := NewAdminService(store)
	ctx := context.Background()

	q, err := admin.ReserveQuestion(ctx, "내일의 질문", "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, "2026. 08. 29", q.Date)

	_, err = admin.ReserveQuestion(ctx, "", "2026-08-29")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = admin.ReserveQuestion(ctx, "text", "")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, admin.DeleteQuestion(ctx, q.ID))
	assert.ErrorIs(t, admin.DeleteQuestion(ctx, q.ID), ErrNotFound)
}

func TestNotices_LatestOnly(t *testing.T) {
	store := inmemory.New()
	admin := NewAdminService(store)
	ctx := context.Background()

	_, err := admin.LatestNotice(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = admin.PostNotice(ctx, "first notice")
	require.NoError(t, err)
	second, err := admin.PostNotice(ctx, "second notice")
	require.NoError(t, err)

	latest, err := admin.LatestNotice(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "second notice", latest.Content)

	require.NoError(t, admin.DeleteNotice(ctx, second.ID))
	assert.ErrorIs(t, admin.DeleteNotice(ctx, second.ID), ErrNotFound)

	latest, err = admin.LatestNotice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first notice", latest.Content)
}

func TestStatsAndRoster(t *testing.T) {
	store := inmemory.New()
	identity := NewIdentityService(store)
	admin := NewAdminService(store)
	feed := NewFeedService(store, nil)
	ctx := context.Background()

	alice, err := identity.Register(ctx, "alice", "secret", "")
	require.NoError(t, err)
	_, err = identity.Register(ctx, "bob", "secret", "")
	require.NoError(t, err)
	_, err = feed.CreateDiary(ctx, alice, "entry", "calm", "", models.DiaryPublic)
	require.NoError(t, err)

	stats, err := admin.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.UserCount)
	assert.EqualValues(t, 1, stats.DiaryCount)

	roster, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "alice", roster[0].Username)
}
