package middleware

import (
	"net/http"
	"strings"

	"github.com/mehul/notes-app/backend/internal/api"
	"github.com/mehul/notes-app/backend/internal/auth"
)

// RequireAuth validates the "Authorization: Bearer <token>" header and
// injects the decoded user snapshot into the request context. An absent
// or malformed header reads as a missing token, matching what the web
// client expects before redirecting to login.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				api.Error(w, http.StatusUnauthorized, "Missing token")
				return
			}

			user, err := tokens.Verify(parts[1])
			if err != nil {
				api.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := auth.ContextWithUser(r.Context(), *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
