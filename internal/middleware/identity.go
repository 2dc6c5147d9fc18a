package middleware

import (
	"net/http"

	"github.com/munsiapp/munsi/internal/auth"
)

const (
	userHeader = "X-Auth-User"
	roleHeader = "X-Auth-Role"
)

// RequireIdentity reads the identity headers stamped by the edge proxy and
// populates AuthContext. Requests without a user header are rejected; the
// proxy strips these headers from client traffic, so a present header is a
// verified identity.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userHeader)
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		role := r.Header.Get(roleHeader)
		if role == "" {
			role = auth.RoleTenant
		}

		ctx := auth.WithAuth(r.Context(), auth.AuthContext{
			UserID: userID,
			Role:   role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLandlord checks that the authenticated user has the landlord role.
// Admins pass as well.
func RequireLandlord(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsLandlord(r.Context()) && !auth.IsAdmin(r.Context()) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin checks that the authenticated user has the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r.Context()) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
