// Package correlation threads a per-request correlation identifier through the
// context so the same id appears on every log line and outbound hub call of a
// request, without global state.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is the HTTP header carrying the correlation identifier
const HeaderName = "X-Correlation-ID"

type contextKey struct{}

// NewID generates a fresh correlation identifier
func NewID() string {
	return uuid.NewString()
}

// WithID returns a context carrying the given correlation id
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the correlation id stored in ctx, or an empty string
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// EnsureID returns ctx with a correlation id, generating one if absent
func EnsureID(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := NewID()
	return WithID(ctx, id), id
}
