package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

func TestCreateUser_DuplicateUsername(t *testing.T) {
	store := New()
	ctx := context.Background()

	first := &models.User{Username: "alice", Nickname: "alice"}
	require.NoError(t, store.CreateUser(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &models.User{Username: "alice", Nickname: "other"}
	err := store.CreateUser(ctx, second)
	assert.True(t, storage.IsDuplicate(err))
}

func TestUpdateUser_AvatarSemantics(t *testing.T) {
	store := New()
	ctx := context.Background()

	u := &models.User{Username: "alice", Nickname: "alice", Avatar: "old.png"}
	require.NoError(t, store.CreateUser(ctx, u))

	require.NoError(t, store.UpdateUser(ctx, u.ID, storage.UserUpdate{Nickname: "a", Bio: "b"}))
	got, err := store.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "old.png", got.Avatar)

	avatar := "new.png"
	require.NoError(t, store.UpdateUser(ctx, u.ID, storage.UserUpdate{Nickname: "a", Bio: "b", Avatar: &avatar}))
	got, err = store.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new.png", got.Avatar)

	err = store.UpdateUser(ctx, "missing", storage.UserUpdate{})
	assert.True(t, storage.IsNotFound(err))
}

func TestListDiaries_FilterAndOrder(t *testing.T) {
	store := New()
	ctx := context.Background()

	owner := &models.User{Username: "alice", Nickname: "alice"}
	require.NoError(t, store.CreateUser(ctx, owner))

	mk := func(content, mood string, isPrivate int) *models.Diary {
		d := &models.Diary{
			CreatedAt: time.Now(),
			UserID:    owner.ID,
			Content:   content,
			Mood:      mood,
			IsPrivate: isPrivate,
		}
		require.NoError(t, store.CreateDiary(ctx, d))
		return d
	}
	mk("one", "calm", models.DiaryPublic)
	mk("two", "happy", models.DiaryPublic)
	hidden := mk("three", "calm", models.DiaryPrivate)

	// Anonymous viewer: public only, newest first.
	list, err := store.ListDiaries(ctx, storage.DiaryFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "two", list[0].Content)
	assert.Equal(t, "one", list[1].Content)

	// Oldest-first flips the order.
	list, err = store.ListDiaries(ctx, storage.DiaryFilter{Oldest: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Content)

	// Mood filter composes with visibility.
	list, err = store.ListDiaries(ctx, storage.DiaryFilter{ViewerID: owner.ID, Mood: "calm"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, hidden.ID, list[0].ID)

	// "all" is no restriction.
	list, err = store.ListDiaries(ctx, storage.DiaryFilter{ViewerIsAdmin: true, Mood: "all"})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestToggleLikeAndCounts(t *testing.T) {
	store := New()
	ctx := context.Background()

	d := &models.Diary{Content: "entry"}
	require.NoError(t, store.CreateDiary(ctx, d))

	liked, err := store.ToggleLike(ctx, d.ID, "u1")
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = store.ToggleLike(ctx, d.ID, "u2")
	require.NoError(t, err)
	assert.True(t, liked)

	counts, err := store.LikeCountsByDiaryIDs(ctx, []string{d.ID, "other"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[d.ID])
	assert.Zero(t, counts["other"])

	likedSet, err := store.LikedDiaryIDs(ctx, "u1", []string{d.ID})
	require.NoError(t, err)
	assert.True(t, likedSet[d.ID])

	liked, err = store.ToggleLike(ctx, d.ID, "u1")
	require.NoError(t, err)
	assert.False(t, liked)

	likedSet, err = store.LikedDiaryIDs(ctx, "u1", []string{d.ID})
	require.NoError(t, err)
	assert.False(t, likedSet[d.ID])
}

func TestDeleteDiary_Cascade(t *testing.T) {
	store := New()
	ctx := context.Background()

	d := &models.Diary{Content: "entry"}
	require.NoError(t, store.CreateDiary(ctx, d))
	require.NoError(t, store.CreateComment(ctx, &models.Comment{DiaryID: d.ID, UserID: "u1", Content: "hi"}))
	_, err := store.ToggleLike(ctx, d.ID, "u1")
	require.NoError(t, err)

	require.NoError(t, store.DeleteDiary(ctx, d.ID))

	_, err = store.DiaryByID(ctx, d.ID)
	assert.True(t, storage.IsNotFound(err))
	comments, err := store.ListComments(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
	counts, err := store.LikeCountsByDiaryIDs(ctx, []string{d.ID})
	require.NoError(t, err)
	assert.Zero(t, counts[d.ID])

	err = store.DeleteDiary(ctx, d.ID)
	assert.True(t, storage.IsNotFound(err))
}

func TestUpsertAnswer_SingleRecord(t *testing.T) {
	store := New()
	ctx := context.Background()

	q := &models.Question{Text: "question"}
	require.NoError(t, store.CreateQuestion(ctx, q))

	first := &models.Answer{QuestionID: q.ID, UserID: "u1", Content: "draft", Date: "2026. 08. 28"}
	require.NoError(t, store.UpsertAnswer(ctx, first))
	second := &models.Answer{QuestionID: q.ID, UserID: "u1", Content: "final", Date: "2026. 08. 29"}
	require.NoError(t, store.UpsertAnswer(ctx, second))

	got, err := store.AnswerFor(ctx, q.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)
	assert.Equal(t, "2026. 08. 29", got.Date)

	answers, err := store.ListAnswers(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 1)

	_, err = store.AnswerFor(ctx, q.ID, "u2")
	assert.True(t, storage.IsNotFound(err))
}

func TestUsersByIDs_MissingAbsent(t *testing.T) {
	store := New()
	ctx := context.Background()

	u := &models.User{Username: "alice", Nickname: "alice"}
	require.NoError(t, store.CreateUser(ctx, u))

	users, err := store.UsersByIDs(ctx, []string{u.ID, "ghost"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[u.ID].Nickname)
}
