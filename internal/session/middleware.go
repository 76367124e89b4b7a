// internal/session/middleware.go
//
// Session gate for admin routes.
//
// The admin front end branches on the response envelope's `success`
// field, so an unauthenticated request gets the uniform failure shape
// rather than a bare 401 page.
package session

import (
	"net/http"

	"github.com/yanizio/summit/internal/respond"
)

// RequireAdmin rejects requests that lack a valid admin session.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Valid(r) {
			respond.Fail(w, http.StatusUnauthorized, "Authentication required.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
