package handlers

import (
	"net/http"

	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
)

type ProfileHandler struct {
	identity *services.IdentityService
	images   *services.ImageService
}

func NewProfileHandler(identity *services.IdentityService, images *services.ImageService) *ProfileHandler {
	return &ProfileHandler{identity: identity, images: images}
}

// Update overwrites the session user's nickname and bio; the avatar is
// replaced only when a profile_img file is attached.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		fail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	nickname := r.FormValue("nickname")
	bio := r.FormValue("bio")
	if nickname == "" {
		fail(w, http.StatusBadRequest, "Nickname is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	var avatar *string
	if files := r.MultipartForm.File["profile_img"]; len(files) > 0 {
		stored, err := h.images.StoreFromHeader(ctx, files[0])
		if err != nil {
			failErr(w, err)
			return
		}
		avatar = &stored
	}

	if err := h.identity.UpdateProfile(ctx, user.ID, nickname, bio, avatar); err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
