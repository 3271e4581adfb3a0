package middleware

import (
	"errors"
	"net/http"

	"echo-server/internal/service"
	"echo-server/pkg/response"
)

// AdminMiddleware layers the privilege check on top of AuthMiddleware.
// The flag is read from the store on every request, not from the
// token, so a demoted admin loses access immediately.
func AdminMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r)
			if userID == 0 {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			isAdmin, err := authService.RequireAdmin(r.Context(), userID)
			if err != nil {
				if errors.Is(err, service.ErrNotFound) {
					response.NotFound(w, "User not found")
					return
				}
				response.InternalError(w, "Server error")
				return
			}

			if !isAdmin {
				response.Forbidden(w, "Admin privileges required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
