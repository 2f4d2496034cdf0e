package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage"
)

type DiaryHandler struct {
	feed   *services.FeedService
	images *services.ImageService
}

func NewDiaryHandler(feed *services.FeedService, images *services.ImageService) *DiaryHandler {
	return &DiaryHandler{feed: feed, images: images}
}

type diaryFeedResponse struct {
	Success bool                    `json:"success"`
	Diaries []models.DecoratedDiary `json:"diaries"`
	Total   int                     `json:"total"`
}

// List returns the decorated feed for the session viewer. Anonymous
// requests see public entries only.
func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.UserFromContext(r.Context())

	ctx, cancel := withTimeout(r)
	defer cancel()

	feed, err := h.feed.ListDiaries(ctx, viewer, services.FeedOptions{
		Mood: r.URL.Query().Get("mood"),
		Sort: r.URL.Query().Get("sort"),
	})
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, diaryFeedResponse{
		Success: true,
		Diaries: feed,
		Total:   len(feed),
	})
}

// Create stores a new diary entry for the session user. The body is
// multipart so an image can ride along.
func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		fail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	content := r.FormValue("content")
	mood := r.FormValue("mood")
	isPrivate, _ := strconv.Atoi(r.FormValue("is_private"))

	ctx, cancel := withTimeout(r)
	defer cancel()

	var image string
	// Read the part header directly; FormFile would open a second handle
	// that StoreFromHeader never sees.
	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		var err error
		image, err = h.images.StoreFromHeader(ctx, files[0])
		if err != nil {
			failErr(w, err)
			return
		}
	}

	diary, err := h.feed.CreateDiary(ctx, user, content, mood, image, isPrivate)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"diary":   diary,
	})
}

type diaryUpdateRequest struct {
	Content   string `json:"content"`
	Mood      string `json:"mood"`
	IsPrivate int    `json:"is_private"`
}

// Update edits a diary entry; only the owner or an admin may edit.
func (h *DiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	diaryID := chi.URLParam(r, "id")

	var req diaryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		fail(w, http.StatusBadRequest, "Content is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	err := h.feed.UpdateDiary(ctx, user, diaryID, storage.DiaryUpdate{
		Content:   req.Content,
		Mood:      req.Mood,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Delete removes a diary entry and everything hanging off it.
func (h *DiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	diaryID := chi.URLParam(r, "id")

	ctx, cancel := withTimeout(r)
	defer cancel()

	if err := h.feed.DeleteDiary(ctx, user, diaryID); err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
