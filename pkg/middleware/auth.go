package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/campuskart/pkg/auth"
	"github.com/shashiranjanraj/campuskart/pkg/response"
)

type identityKey struct{}

// Identity is the verified caller attached to the request context by Auth.
type Identity struct {
	UserID string
	Role   string
}

// IdentityResolver checks the token subject against the user store. It must
// fail when the user no longer exists or is banned, and may return a role
// that is fresher than the one embedded in the token.
type IdentityResolver func(ctx context.Context, userID string) (Identity, error)

var resolveIdentity IdentityResolver

// SetIdentityResolver wires the user lookup into the auth middleware.
// Called once at boot; pkg code never imports the app layer directly.
func SetIdentityResolver(fn IdentityResolver) {
	resolveIdentity = fn
}

// Auth verifies the bearer token, resolves it to a live user and stores the
// resulting Identity in the request context. Missing, malformed or expired
// credentials — and tokens referencing a deleted or banned user — all fail
// with 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ident := Identity{UserID: claims.UserID, Role: claims.Role}
		if resolveIdentity != nil {
			ident, err = resolveIdentity(r.Context(), claims.UserID)
			if err != nil {
				response.Unauthorized(w)
				return
			}
		}

		ctx := context.WithValue(r.Context(), identityKey{}, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromCtx returns the verified caller, if Auth has run.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(Identity)
	return ident, ok
}

// UserIDFromCtx returns the verified caller's user ID.
func UserIDFromCtx(r *http.Request) (string, bool) {
	ident, ok := IdentityFromCtx(r.Context())
	return ident.UserID, ok
}

// RoleFromCtx returns the verified caller's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	ident, ok := IdentityFromCtx(r.Context())
	return ident.Role, ok
}
