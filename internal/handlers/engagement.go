package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
)

type EngagementHandler struct {
	engagement *services.EngagementService
}

func NewEngagementHandler(engagement *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

type toggleLikeRequest struct {
	DiaryID string `json:"diary_id"`
}

// ToggleLike flips the session user's like on a diary and reports the new
// state.
func (h *EngagementHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req toggleLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.DiaryID == "" {
		fail(w, http.StatusBadRequest, "diary_id is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	liked, err := h.engagement.ToggleLike(ctx, req.DiaryID, user.ID)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"liked":   liked,
	})
}

type commentListResponse struct {
	Success  bool                      `json:"success"`
	Comments []models.DecoratedComment `json:"comments"`
}

// ListComments returns a diary's comments oldest-first.
func (h *EngagementHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	diaryID := chi.URLParam(r, "diary_id")

	ctx, cancel := withTimeout(r)
	defer cancel()

	comments, err := h.engagement.ListComments(ctx, diaryID)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, commentListResponse{
		Success:  true,
		Comments: comments,
	})
}

type addCommentRequest struct {
	DiaryID string `json:"diary_id"`
	Content string `json:"content"`
}

// AddComment appends a comment by the session user.
func (h *EngagementHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.DiaryID == "" {
		fail(w, http.StatusBadRequest, "diary_id is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	comment, err := h.engagement.AddComment(ctx, req.DiaryID, user, req.Content)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"comment": comment,
	})
}
