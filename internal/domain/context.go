// Package domain provides core business types and context helpers.
//
// Context helpers centralize request-scoped identity access so handlers
// receive an explicit authenticated-identity value rather than re-parsing
// credentials.
package domain

import (
	"context"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

// identityContextKey stores the authenticated identity in context.
const identityContextKey contextKey = iota

// NewContextWithIdentity returns a new context with the identity attached.
func NewContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext retrieves the authenticated identity from context.
// Returns nil if the request is unauthenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey).(*Identity)
	return id
}

// IsAuthenticated returns true if there is an identity in context.
func IsAuthenticated(ctx context.Context) bool {
	return IdentityFromContext(ctx) != nil
}
