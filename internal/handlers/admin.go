package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
)

type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats returns total user and diary counts.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	stats, err := h.admin.Stats(ctx)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}

// Users returns the roster: username and nickname for every account.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	roster, err := h.admin.ListUsers(ctx)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   roster,
		"count":   len(roster),
	})
}

// UserDetail returns the per-user view; the privileged field set is gated
// on the session viewer's role.
func (h *AdminHandler) UserDetail(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.UserFromContext(r.Context())
	username := chi.URLParam(r, "username")

	ctx, cancel := withTimeout(r)
	defer cancel()

	detail, err := h.admin.UserDetail(ctx, username, viewer.IsAdmin())
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    detail,
	})
}

type reserveQuestionRequest struct {
	Text string `json:"text"`
	Date string `json:"date"` // dash-separated, e.g. "2026-08-29"
}

// ReserveQuestion schedules a question for a future date.
func (h *AdminHandler) ReserveQuestion(w http.ResponseWriter, r *http.Request) {
	var req reserveQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	question, err := h.admin.ReserveQuestion(ctx, req.Text, req.Date)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

// DeleteQuestion removes a scheduled question.
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	if err := h.admin.DeleteQuestion(ctx, chi.URLParam(r, "id")); err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
