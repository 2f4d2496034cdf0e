package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage/inmemory"
)

func TestRegisterAndLogin(t *testing.T) {
	store := inmemory.New()
	identity := NewIdentityService(store)
	ctx := context.Background()

	user, err := identity.Register(ctx, "alice", "secret", "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice", user.Nickname)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, welcomeBio, user.Bio)
	assert.NotEqual(t, "secret", user.PasswordHash)

	logged, err := identity.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegister_AdminRole(t *testing.T) {
	store := inmemory.New()
	identity := NewIdentityService(store)

	user, err := identity.Register(context.Background(), "admin", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestRegister_Errors(t *testing.T) {
	store := inmemory.New()
	identity := NewIdentityService(store)
	ctx := context.Background()

	_, err := identity.Register(ctx, "  ", "secret", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = identity.Register(ctx, "alice", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = identity.Register(ctx, "alice", "secret", "")
	require.NoError(t, err)
	_, err = identity.Register(ctx, "alice", "another", "")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestLogin_Errors(t *testing.T) {
	store := inmemory.New()
	identity := NewIdentityService(store)
	ctx := context.Background()

	_, err := identity.Register(ctx, "alice", "secret", "")
	require.NoError(t, err)

	_, err = identity.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = identity.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestUpdateProfile_AvatarOnlyWhenSupplied(t *testing.T) {
	store := inmemory.New()
	identity := NewIdentityService(store)
	ctx := context.Background()

	user, err := identity.Register(ctx, "alice", "secret", "")
	require.NoError(t, err)

	avatar := "https://cdn.example.com/a.png"
	require.NoError(t, identity.UpdateProfile(ctx, user.ID, "앨리스", "new bio", &avatar))

	// A later update without an image keeps the stored avatar.
	require.NoError(t, identity.UpdateProfile(ctx, user.ID, "앨리스", "newer bio", nil))

	got, err := store.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "앨리스", got.Nickname)
	assert.Equal(t, "newer bio", got.Bio)
	assert.Equal(t, avatar, got.Avatar)
}

func TestGetProfile_Redaction(t *testing.T) {
	store := inmemory.New()
	identity := NewIdentityService(store)
	ctx := context.Background()

	_, err := identity.Register(ctx, "alice", "secret", "203.0.113.7")
	require.NoError(t, err)

	profile, err := identity.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Nickname)
	assert.Empty(t, profile.PasswordHash)
	assert.Empty(t, profile.SignupIP)
	assert.Empty(t, profile.Role)

	_, err = identity.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)
}
