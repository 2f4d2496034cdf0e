package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imsosorrybutiloveyou/Girok/internal/services"
)

type NoticeHandler struct {
	admin *services.AdminService
}

func NewNoticeHandler(admin *services.AdminService) *NoticeHandler {
	return &NoticeHandler{admin: admin}
}

// Latest returns the most recent notice. No notice yet is not an error,
// just an empty payload.
func (h *NoticeHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	notice, err := h.admin.LatestNotice(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "notice": nil})
			return
		}
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"notice":  notice,
	})
}

type postNoticeRequest struct {
	Content string `json:"content"`
}

// Post creates a notice (admin only; gated at the router).
func (h *NoticeHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req postNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	notice, err := h.admin.PostNotice(ctx, req.Content)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"notice":  notice,
	})
}

// Delete removes a notice by id (admin only; gated at the router).
func (h *NoticeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	if err := h.admin.DeleteNotice(ctx, chi.URLParam(r, "id")); err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
