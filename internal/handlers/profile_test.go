package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage/inmemory"
)

func TestProfileUpdate_WithAvatar(t *testing.T) {
	store := inmemory.New()
	h := NewProfileHandler(services.NewIdentityService(store), newInlineImageService(t))

	alice := &models.User{ID: "u1", Username: "alice", Nickname: "alice"}
	require.NoError(t, store.CreateUser(context.Background(), alice))

	r := multipartRequest(t, "/api/profile/update", map[string]string{
		"nickname": "앨리스",
		"bio":      "new bio",
	}, "profile_img", "me.png", []byte("avatar-bytes"))
	r = r.WithContext(middleware.ContextWithUser(r.Context(), alice))

	w := httptest.NewRecorder()
	h.Update(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	got, err := store.UserByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "앨리스", got.Nickname)
	assert.True(t, strings.HasPrefix(got.Avatar, "data:"))
}

func TestProfileUpdate_KeepsAvatarWithoutFile(t *testing.T) {
	store := inmemory.New()
	h := NewProfileHandler(services.NewIdentityService(store), newInlineImageService(t))

	alice := &models.User{ID: "u1", Username: "alice", Nickname: "alice", Avatar: "data:image/png;base64,old"}
	require.NoError(t, store.CreateUser(context.Background(), alice))

	r := multipartRequest(t, "/api/profile/update", map[string]string{
		"nickname": "alice",
		"bio":      "just the words",
	}, "", "", nil)
	r = r.WithContext(middleware.ContextWithUser(r.Context(), alice))

	w := httptest.NewRecorder()
	h.Update(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	got, err := store.UserByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,old", got.Avatar)
}
