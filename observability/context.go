package observability

import (
	"context"

	"github.com/google/uuid"
)

type chainIDKey struct{}

// ContextWithChainID returns a context carrying a chain ID. Instrumented
// async stages pulled with this context report it instead of their own.
func ContextWithChainID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, chainIDKey{}, id)
}

// ChainIDFromContext returns the chain ID stored in ctx, if any.
func ChainIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(chainIDKey{}).(string)
	return id, ok && id != ""
}

// NewChainID returns a fresh random chain ID.
func NewChainID() string {
	return uuid.NewString()
}
