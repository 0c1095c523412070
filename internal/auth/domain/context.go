package domain

import (
	"context"
)

// principalKey is a context key type for storing the request principal.
type principalKey struct{}

// WithPrincipal stores the caller identity in the context.
// This is typically called by the identity middleware after header extraction.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the caller identity from the context.
// Returns (principal, true) if a principal is present, or (zero, false) if
// none was set.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(Principal)
	return principal, ok
}
