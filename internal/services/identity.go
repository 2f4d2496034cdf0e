package services

import (
	"context"
	"strings"
	"time"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
	"github.com/imsosorrybutiloveyou/Girok/pkg/utils"
)

const welcomeBio = "오늘의 기록을 시작해 보세요!"

// IdentityService handles registration, login, and profile updates.
type IdentityService struct {
	store storage.Store
}

func NewIdentityService(store storage.Store) *IdentityService {
	return &IdentityService{store: store}
}

// Register creates a new account. The username is the login key; the
// nickname starts out equal to it and can be changed later. The reserved
// username "admin" receives the admin role.
func (s *IdentityService) Register(ctx context.Context, username, password, ip string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrValidation
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if username == "admin" {
		role = models.RoleAdmin
	}

	user := &models.User{
		CreatedAt:    time.Now(),
		Username:     username,
		PasswordHash: hash,
		Nickname:     username,
		Bio:          welcomeBio,
		Role:         role,
		SignupIP:     ip,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if storage.IsDuplicate(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the user. Session issuance is the
// caller's job so this stays storage-only.
func (s *IdentityService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrWrongPassword
	}
	return user, nil
}

// UpdateProfile overwrites nickname and bio; the avatar is replaced only
// when a new one is supplied.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID, nickname, bio string, avatar *string) error {
	err := s.store.UpdateUser(ctx, userID, storage.UserUpdate{
		Nickname: nickname,
		Bio:      bio,
		Avatar:   avatar,
	})
	if storage.IsNotFound(err) {
		return ErrUnknownUser
	}
	return err
}

// GetProfile returns the public view of a user: nickname, bio, avatar.
// Credential and network fields never leave this method.
func (s *IdentityService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return &models.User{
		ID:        user.ID,
		CreatedAt: user.CreatedAt,
		Username:  user.Username,
		Nickname:  user.Nickname,
		Bio:       user.Bio,
		Avatar:    user.Avatar,
	}, nil
}

// UserByID loads a full user record (used by the auth middleware).
func (s *IdentityService) UserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return user, nil
}
