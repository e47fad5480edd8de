package middleware

import (
	"context"
	"net/http"
)

const (
	// ClientIPContextKey is the context key for the client IP address
	ClientIPContextKey contextKey = "client_ip"
)

// WithClientIP extracts the real client IP and stores it in the context.
// Proxy headers can be spoofed; in production the reverse proxy must be
// the only path to the application.
func WithClientIP() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ClientIPContextKey, GetClientIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientIPFromContext retrieves the client IP address from the context.
// Returns an empty string if the middleware was not applied.
func GetClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ClientIPContextKey).(string); ok {
		return ip
	}
	return ""
}
