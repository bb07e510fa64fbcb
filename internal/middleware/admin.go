package middleware

import (
	"net/http"

	"goaltrack/internal/models"
	"goaltrack/internal/repository"
)

// RequireAdmin re-queries the caller's role from the store instead of
// trusting the token claim, so a demoted admin loses access before their
// token expires. Must run after JWTAuth.
func RequireAdmin(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := UserID(r.Context())
			if id == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
				return
			}

			role, err := users.GetRole(r.Context(), id)
			if err != nil || role != models.RoleAdmin {
				writeJSONError(w, http.StatusForbidden, "forbidden", "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
