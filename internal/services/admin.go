package services

import (
	"context"
	"time"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

// AdminService: notices, usage statistics, question scheduling, and the
// privileged per-user detail view.
type AdminService struct {
	store storage.Store
}

func NewAdminService(store storage.Store) *AdminService {
	return &AdminService{store: store}
}

// Stats is the coarse usage summary.
type Stats struct {
	UserCount  int64 `json:"user_count"`
	DiaryCount int64 `json:"diary_count"`
}

func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	diaries, err := s.store.CountDiaries(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{UserCount: users, DiaryCount: diaries}, nil
}

// RosterEntry is the roster view: username plus display name only.
type RosterEntry struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

func (s *AdminService) ListUsers(ctx context.Context) ([]RosterEntry, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	roster := make([]RosterEntry, len(users))
	for i, u := range users {
		roster[i] = RosterEntry{Username: u.Username, Nickname: u.Nickname}
	}
	return roster, nil
}

// UserDetail is the per-user lookup. Credential storage, signup address,
// and activity counts appear only in the admin view.
type UserDetail struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar,omitempty"`

	CreatedAt    *time.Time `json:"created_at,omitempty"`
	PasswordHash string     `json:"password_hash,omitempty"`
	SignupIP     string     `json:"signup_ip,omitempty"`
	DiaryCount   *int64     `json:"diary_count,omitempty"`
	AnswerCount  *int64     `json:"answer_count,omitempty"`
}

// UserDetail returns the field set appropriate to the viewer's privilege.
// This is the one place field-level redaction is enforced.
func (s *AdminService) UserDetail(ctx context.Context, username string, viewerIsAdmin bool) (*UserDetail, error) {
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	detail := &UserDetail{
		Username: user.Username,
		Nickname: user.Nickname,
		Bio:      user.Bio,
		Avatar:   user.Avatar,
	}
	if !viewerIsAdmin {
		return detail, nil
	}

	diaries, err := s.store.CountDiariesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	answers, err := s.store.CountAnswersByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	createdAt := user.CreatedAt
	detail.CreatedAt = &createdAt
	detail.PasswordHash = user.PasswordHash
	detail.SignupIP = user.SignupIP
	detail.DiaryCount = &diaries
	detail.AnswerCount = &answers
	return detail, nil
}

// ReserveQuestion schedules a question for a given date. The date arrives
// dash-separated from the admin UI and is stored in the display convention.
func (s *AdminService) ReserveQuestion(ctx context.Context, text, date string) (*models.Question, error) {
	if text == "" || date == "" {
		return nil, ErrValidation
	}

	q := &models.Question{
		CreatedAt: time.Now(),
		Text:      text,
		Date:      ToDisplayDate(date),
	}
	if err := s.store.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AdminService) DeleteQuestion(ctx context.Context, id string) error {
	err := s.store.DeleteQuestion(ctx, id)
	if storage.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *AdminService) PostNotice(ctx context.Context, content string) (*models.Notice, error) {
	if content == "" {
		return nil, ErrValidation
	}

	now := time.Now()
	n := &models.Notice{
		CreatedAt: now,
		Content:   content,
		Date:      DisplayDate(now),
	}
	if err := s.store.CreateNotice(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *AdminService) DeleteNotice(ctx context.Context, id string) error {
	err := s.store.DeleteNotice(ctx, id)
	if storage.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

// LatestNotice surfaces only the most recently posted notice, never a
// history. No notice yet is ErrNotFound.
func (s *AdminService) LatestNotice(ctx context.Context) (*models.Notice, error) {
	n, err := s.store.LatestNotice(ctx)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}
