package handlers

import (
	"net/http"

	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
)

type RecommendHandler struct {
	recommend *services.RecommendService
	images    *services.ImageService
}

func NewRecommendHandler(recommend *services.RecommendService, images *services.ImageService) *RecommendHandler {
	return &RecommendHandler{recommend: recommend, images: images}
}

// Create stores a recommendation by the session user (multipart, optional
// image).
func (h *RecommendHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		fail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	content := r.FormValue("content")
	tag := r.FormValue("tag")

	ctx, cancel := withTimeout(r)
	defer cancel()

	var image string
	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		var err error
		image, err = h.images.StoreFromHeader(ctx, files[0])
		if err != nil {
			failErr(w, err)
			return
		}
	}

	rec, err := h.recommend.Create(ctx, user, content, image, tag)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":        true,
		"recommendation": rec,
	})
}

type recommendListResponse struct {
	Success         bool                             `json:"success"`
	Recommendations []models.DecoratedRecommendation `json:"recommendations"`
}

// List returns recommendations, optionally filtered by tag.
func (h *RecommendHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	recs, err := h.recommend.List(ctx, r.URL.Query().Get("tag"))
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendListResponse{
		Success:         true,
		Recommendations: recs,
	})
}
