// Package rbac provides role-based access control middleware.
//
// Gates are expressed as capability predicates over the caller's role and
// composed in front of handlers at route-registration time:
//
//	sellers := api.Group("/seller", middleware.Auth, rbac.HasRole("seller", "admin"))
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/campuskart/pkg/middleware"
	"github.com/shashiranjanraj/campuskart/pkg/response"
)

// Allow returns middleware that admits the request only when the capability
// predicate accepts the caller's role. Requires middleware.Auth upstream.
func Allow(can func(role string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !can(role) {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HasRole is Allow with a fixed allow-list of roles.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return Allow(func(role string) bool { return allowed[role] })
}

// Guest blocks authenticated callers (useful for login/signup).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.UserIDFromCtx(r); ok {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
