package domain

import (
	"context"
)

// requestIDKey is a context key type for the transport request identifier.
type requestIDKey struct{}

// WithRequestID stores the transport request identifier in the context so
// audit entries can be correlated with access logs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID retrieves the transport request identifier from the context.
// Returns an empty string if none was set.
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}
