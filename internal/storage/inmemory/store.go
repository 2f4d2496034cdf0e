// Package inmemory implements storage.Store with mutex-guarded maps. It is
// used by the service tests and mirrors the mongostore semantics, including
// the uniqueness constraints on usernames, likes, and answers.
package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

type Store struct {
	mu sync.RWMutex

	users       map[string]*models.User
	usersByName map[string]string // username -> id
	userOrder   []string

	diaries    map[string]*models.Diary
	diaryOrder []string

	comments     map[string]*models.Comment
	commentOrder []string

	likes map[string]*models.Like // key: diaryID + "\x00" + userID

	questions     map[string]*models.Question
	questionOrder []string

	answers       map[string]*models.Answer // key: id
	answersByPair map[string]string         // questionID + "\x00" + userID -> id
	answerOrder   []string

	notices     map[string]*models.Notice
	noticeOrder []string

	recommendations map[string]*models.Recommendation
	recOrder        []string
}

func New() *Store {
	return &Store{
		users:           make(map[string]*models.User),
		usersByName:     make(map[string]string),
		diaries:         make(map[string]*models.Diary),
		comments:        make(map[string]*models.Comment),
		likes:           make(map[string]*models.Like),
		questions:       make(map[string]*models.Question),
		answers:         make(map[string]*models.Answer),
		answersByPair:   make(map[string]string),
		notices:         make(map[string]*models.Notice),
		recommendations: make(map[string]*models.Recommendation),
	}
}

func likeKey(diaryID, userID string) string { return diaryID + "\x00" + userID }

func answerKey(questionID, userID string) string { return questionID + "\x00" + userID }

// === Users ===

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByName[u.Username]; exists {
		return storage.ErrDuplicate
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = u
	s.usersByName[u.Username] = u.ID
	s.userOrder = append(s.userOrder, u.ID)
	return nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByName[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) UsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd storage.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Nickname = upd.Nickname
	u.Bio = upd.Bio
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id])
	}
	return out, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// === Diaries ===

func (s *Store) CreateDiary(ctx context.Context, d *models.Diary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	s.diaries[d.ID] = d
	s.diaryOrder = append(s.diaryOrder, d.ID)
	return nil
}

func (s *Store) DiaryByID(ctx context.Context, id string) (*models.Diary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.diaries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return d, nil
}

func (s *Store) ListDiaries(ctx context.Context, f storage.DiaryFilter) ([]*models.Diary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []*models.Diary{}
	for _, id := range s.diaryOrder {
		d := s.diaries[id]
		if !f.ViewerIsAdmin && d.IsPrivate != models.DiaryPublic && d.UserID != f.ViewerID {
			continue
		}
		if f.Mood != "" && f.Mood != "all" && d.Mood != f.Mood {
			continue
		}
		matched = append(matched, d)
	}

	if !f.Oldest {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	return matched, nil
}

func (s *Store) UpdateDiary(ctx context.Context, id string, upd storage.DiaryUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.diaries[id]
	if !ok {
		return storage.ErrNotFound
	}
	d.Content = upd.Content
	d.Mood = upd.Mood
	d.IsPrivate = upd.IsPrivate
	return nil
}

func (s *Store) DeleteDiary(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.diaries[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.diaries, id)
	s.diaryOrder = remove(s.diaryOrder, id)

	for cid, c := range s.comments {
		if c.DiaryID == id {
			delete(s.comments, cid)
			s.commentOrder = remove(s.commentOrder, cid)
		}
	}
	for key, l := range s.likes {
		if l.DiaryID == id {
			delete(s.likes, key)
		}
	}
	return nil
}

func (s *Store) CountDiaries(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.diaries)), nil
}

func (s *Store) CountDiariesByUser(ctx context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, d := range s.diaries {
		if d.UserID == userID {
			n++
		}
	}
	return n, nil
}

// === Likes ===

func (s *Store) ToggleLike(ctx context.Context, diaryID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey(diaryID, userID)
	if _, ok := s.likes[key]; ok {
		delete(s.likes, key)
		return false, nil
	}
	s.likes[key] = &models.Like{ID: uuid.NewString(), DiaryID: diaryID, UserID: userID}
	return true, nil
}

func (s *Store) LikeCountsByDiaryIDs(ctx context.Context, diaryIDs []string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(diaryIDs))
	for _, id := range diaryIDs {
		wanted[id] = true
	}
	counts := make(map[string]int64, len(diaryIDs))
	for _, l := range s.likes {
		if wanted[l.DiaryID] {
			counts[l.DiaryID]++
		}
	}
	return counts, nil
}

func (s *Store) LikedDiaryIDs(ctx context.Context, userID string, diaryIDs []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	liked := make(map[string]bool, len(diaryIDs))
	for _, id := range diaryIDs {
		if _, ok := s.likes[likeKey(id, userID)]; ok {
			liked[id] = true
		}
	}
	return liked, nil
}

// === Comments ===

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.comments[c.ID] = c
	s.commentOrder = append(s.commentOrder, c.ID)
	return nil
}

func (s *Store) ListComments(ctx context.Context, diaryID string) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.Comment{}
	for _, id := range s.commentOrder {
		if c := s.comments[id]; c.DiaryID == diaryID {
			out = append(out, c)
		}
	}
	return out, nil
}

// === Questions ===

func (s *Store) CreateQuestion(ctx context.Context, q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	s.questions[q.ID] = q
	s.questionOrder = append(s.questionOrder, q.ID)
	return nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Question, 0, len(s.questionOrder))
	for _, id := range s.questionOrder {
		out = append(out, s.questions[id])
	}
	// Display dates are zero-padded ("2026. 08. 29"), so the string order
	// is the calendar order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.questions, id)
	s.questionOrder = remove(s.questionOrder, id)
	return nil
}

func (s *Store) CountQuestions(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.questions)), nil
}

// === Answers ===

func (s *Store) UpsertAnswer(ctx context.Context, a *models.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := answerKey(a.QuestionID, a.UserID)
	if id, ok := s.answersByPair[key]; ok {
		existing := s.answers[id]
		existing.Content = a.Content
		existing.Date = a.Date
		*a = *existing
		return nil
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.answers[a.ID] = a
	s.answersByPair[key] = a.ID
	s.answerOrder = append(s.answerOrder, a.ID)
	return nil
}

func (s *Store) AnswerFor(ctx context.Context, questionID, userID string) (*models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.answersByPair[answerKey(questionID, userID)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.answers[id], nil
}

func (s *Store) ListAnswers(ctx context.Context, questionID string) ([]*models.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.Answer{}
	for _, id := range s.answerOrder {
		if a := s.answers[id]; a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) CountAnswersByUser(ctx context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, a := range s.answers {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

// === Notices ===

func (s *Store) CreateNotice(ctx context.Context, n *models.Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	s.notices[n.ID] = n
	s.noticeOrder = append(s.noticeOrder, n.ID)
	return nil
}

func (s *Store) LatestNotice(ctx context.Context) (*models.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.noticeOrder) == 0 {
		return nil, storage.ErrNotFound
	}
	return s.notices[s.noticeOrder[len(s.noticeOrder)-1]], nil
}

func (s *Store) DeleteNotice(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notices[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.notices, id)
	s.noticeOrder = remove(s.noticeOrder, id)
	return nil
}

// === Recommendations ===

func (s *Store) CreateRecommendation(ctx context.Context, rec *models.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	s.recommendations[rec.ID] = rec
	s.recOrder = append(s.recOrder, rec.ID)
	return nil
}

func (s *Store) ListRecommendations(ctx context.Context, tag string) ([]*models.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.Recommendation{}
	for i := len(s.recOrder) - 1; i >= 0; i-- {
		rec := s.recommendations[s.recOrder[i]]
		if tag != "" && tag != "all" && rec.Tag != tag {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
