package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
	"github.com/imsosorrybutiloveyou/Girok/pkg/clientip"
)

type AuthHandler struct {
	identity *services.IdentityService
	sessions *services.Sessions
}

func NewAuthHandler(identity *services.IdentityService, sessions *services.Sessions) *AuthHandler {
	return &AuthHandler{identity: identity, sessions: sessions}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Token    string `json:"token,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Register creates a new account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	_, err := h.identity.Register(ctx, req.Username, req.Password, clientip.FromRequest(r))
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true})
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	user, err := h.identity.Login(ctx, req.Username, req.Password)
	if err != nil {
		// Both unknown user and wrong password are auth failures here.
		fail(w, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success:  true,
		Username: user.Username,
		Nickname: user.Nickname,
		Token:    token,
		IsAdmin:  user.IsAdmin(),
	})
}

// Logout invalidates the current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractBearerToken(r.Header.Get("Authorization"))
	if err := h.sessions.Invalidate(r.Context(), token); err != nil {
		fail(w, http.StatusInternalServerError, "Failed to end session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// UserInfo returns the public profile of any user: nickname, bio, avatar.
func (h *AuthHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	ctx, cancel := withTimeout(r)
	defer cancel()

	user, err := h.identity.GetProfile(ctx, username)
	if err != nil {
		failErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
