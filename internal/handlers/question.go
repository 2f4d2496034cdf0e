package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
)

type QuestionHandler struct {
	questions *services.QuestionService
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// List returns all questions, newest date first.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	questions, err := h.questions.ListQuestions(ctx)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"questions": questions,
	})
}

// History returns, for every question, whether the session user answered
// it and with what.
func (h *QuestionHandler) History(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	ctx, cancel := withTimeout(r)
	defer cancel()

	history, err := h.questions.AnswerHistory(ctx, user.ID)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"history": history,
	})
}

// Answers returns all answers to one question, decorated with writer
// profiles.
func (h *QuestionHandler) Answers(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "question_id")

	ctx, cancel := withTimeout(r)
	defer cancel()

	answers, err := h.questions.ListAnswers(ctx, questionID)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"answers": answers,
	})
}

type submitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Content    string `json:"content"`
}

// SubmitAnswer upserts the session user's answer to a question.
func (h *QuestionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.QuestionID == "" {
		fail(w, http.StatusBadRequest, "question_id is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	answer, err := h.questions.SubmitAnswer(ctx, req.QuestionID, user.ID, req.Content)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"answer":  answer,
	})
}
