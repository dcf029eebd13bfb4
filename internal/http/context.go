package http

import (
	"context"

	"github.com/example/workspace-reservations/internal/application"
)

type contextKey string

const (
	identityContextKey   contextKey = "identity"
	resourceIDContextKey contextKey = "resource_id"
)

// ContextWithIdentity returns a derived context carrying the verified
// caller identity.
func ContextWithIdentity(ctx context.Context, identity application.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the verified caller identity, if present.
func IdentityFromContext(ctx context.Context) (application.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(application.Identity)
	return identity, ok
}

// ContextWithResourceID injects the numeric identifier resolved from the
// request path.
func ContextWithResourceID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, resourceIDContextKey, id)
}

// ResourceIDFromContext extracts an identifier previously associated with
// the context.
func ResourceIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(resourceIDContextKey).(int64)
	return id, ok
}
