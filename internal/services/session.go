package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions.
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping.
	UserSessionKeyPrefix = "user_session:"
)

// Sessions issues and validates opaque Redis-backed session tokens. It
// replaces the old scheme where clients resent their own username as an
// unauthenticated identity claim on every request.
type Sessions struct {
	rdb *redis.Client
}

func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb}
}

// Create stores a new session for a user and returns its token. Any
// existing session for the user is invalidated first, so the 7-day timer
// resets from the current login.
func (s *Sessions) Create(ctx context.Context, userID string) (string, error) {
	s.InvalidateUser(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.rdb.Set(ctx, SessionKeyPrefix+token, userID, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, UserSessionKeyPrefix+userID, token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a session token to a user id. A missing or expired
// token is not an error, just ok=false.
func (s *Sessions) Validate(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	userID, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return "", false
	}
	return userID, true
}

// Invalidate removes a session.
func (s *Sessions) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	userID, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Result()
	if err == nil && userID != "" {
		s.rdb.Del(ctx, UserSessionKeyPrefix+userID)
	}
	return s.rdb.Del(ctx, SessionKeyPrefix+token).Err()
}

// InvalidateUser drops the user's current session (login replacement,
// password change).
func (s *Sessions) InvalidateUser(ctx context.Context, userID string) error {
	token, err := s.rdb.Get(ctx, UserSessionKeyPrefix+userID).Result()
	if err == nil && token != "" {
		s.rdb.Del(ctx, SessionKeyPrefix+token)
	}
	return s.rdb.Del(ctx, UserSessionKeyPrefix+userID).Err()
}
