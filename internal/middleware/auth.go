package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/imsosorrybutiloveyou/Girok/internal/models"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
)

type contextKey string

const userContextKey contextKey = "girok.user"

// Auth resolves the session token in the Authorization header into the
// current user, replacing the old client-claimed-username scheme.
type Auth struct {
	sessions *services.Sessions
	identity *services.IdentityService
}

func NewAuth(sessions *services.Sessions, identity *services.IdentityService) *Auth {
	return &Auth{sessions: sessions, identity: identity}
}

// WithUser attaches the session user to the request context when a valid
// token is present; anonymous requests pass through untouched.
func (a *Auth) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			// Browser WebSocket clients cannot set headers.
			token = r.URL.Query().Get("token")
		}
		if token != "" {
			if userID, ok := a.sessions.Validate(r.Context(), token); ok {
				if user, err := a.identity.UserByID(r.Context(), userID); err == nil {
					r = r.WithContext(ContextWithUser(r.Context(), user))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			writeAuthError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose session user lacks the admin role.
// This is a policy check on the stored role, not a username comparison.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !user.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ContextWithUser returns a context carrying the session user.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the session user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// ExtractBearerToken pulls the token out of an Authorization header value.
func ExtractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
