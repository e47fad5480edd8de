package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/raynerd/attire/internal/auth"
	"github.com/raynerd/attire/internal/domain"
)

// TokenCookieName is the cookie the login handler sets; the token is also
// accepted as a Bearer header for non-browser clients.
const TokenCookieName = "user_token"

// WithIdentity verifies the request's token, if any, and puts the caller's
// identity into the context. Requests without a valid token pass through
// anonymously; RequireAuth is the gate.
func WithIdentity(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := tokens.Verify(tokenString)
			if err != nil {
				// Invalid or expired token. Treat as anonymous rather
				// than rejecting, so public endpoints keep working with
				// a stale cookie present.
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.NewContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without an authenticated identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !domain.IsAuthenticated(r.Context()) {
			respondUnauthorized(w, r, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles rejects authenticated requests whose role is not in the
// allowed set. Unauthenticated requests get 401, wrong role gets 403.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromRequest(r)
			if identity == nil {
				respondUnauthorized(w, r, "Authentication required")
				return
			}
			if !slices.Contains(roles, identity.Role) {
				respondForbidden(w, r, "You don't have permission to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromRequest retrieves the authenticated identity, or nil.
func IdentityFromRequest(r *http.Request) *domain.Identity {
	return domain.IdentityFromContext(r.Context())
}

// extractToken pulls the token from the Authorization header or, failing
// that, the auth cookie.
func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
