package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage/inmemory"
)

func TestToggleLike_Involution(t *testing.T) {
	store := inmemory.New()
	feed := NewFeedService(store, nil)
	engagement := NewEngagementService(store, nil)
	ctx := context.Background()

	alice := newTestUser(t, store, "alice", models.RoleUser)
	bob := newTestUser(t, store, "bob", models.RoleUser)

	diary, err := feed.CreateDiary(ctx, alice, "entry", "calm", "", models.DiaryPublic)
	require.NoError(t, err)

	liked, err := engagement.ToggleLike(ctx, diary.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = engagement.ToggleLike(ctx, diary.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// Back to the original state and count.
	counts, err := store.LikeCountsByDiaryIDs(ctx, []string{diary.ID})
	require.NoError(t, err)
	assert.Zero(t, counts[diary.ID])
}

func TestToggleLike_UnknownDiary(t *testing.T) {
	store := inmemory.New()
	engagement := NewEngagementService(store, nil)

	bob := newTestUser(t, store, "bob", models.RoleUser)

	_, err := engagement.ToggleLike(context.Background(), "no-such-diary", bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddComment_Validation(t *testing.T) {
	store := inmemory.New()
	feed := NewFeedService(store, nil)
	engagement := NewEngagementService(store, nil)
	ctx := context.Background()

	alice := newTestUser(t, store, "alice", models.RoleUser)
	diary, err := feed.CreateDiary(ctx, alice, "entry", "calm", "", models.DiaryPublic)
	require.NoError(t, err)

	_, err = engagement.AddComment(ctx, diary.ID, alice, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = engagement.AddComment(ctx, "no-such-diary", alice, "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListComments_OrderAndDecoration(t *testing.T) {
	store := inmemory.New()
	feed := NewFeedService(store, nil)
	engagement := NewEngagementService(store, nil)
	ctx := context.Background()

	alice := newTestUser(t, store, "alice", models.RoleUser)
	bob := newTestUser(t, store, "bob", models.RoleUser)

	diary, err := feed.CreateDiary(ctx, alice, "entry", "calm", "", models.DiaryPublic)
	require.NoError(t, err)

	_, err = engagement.AddComment(ctx, diary.ID, bob, "first")
	require.NoError(t, err)
	_, err = engagement.AddComment(ctx, diary.ID, alice, "second")
	require.NoError(t, err)

	comments, err := engagement.ListComments(ctx, diary.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// Ascending creation order, decorated with writer nicknames.
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "bob", comments[0].WriterNickname)
	assert.Equal(t, "second", comments[1].Content)
	assert.Equal(t, "alice", comments[1].WriterNickname)
}
