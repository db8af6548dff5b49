// Package ctxattr stores attributes in the context.
// The logger adds them to each message, so a nested code doesn't need a reference to a specialized logger.
package ctxattr

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

type ctxKey string

const attributesCtxKey = ctxKey("attributes")

// ContextWith returns a new context with the attributes added, a later value of the same key wins.
func ContextWith(ctx context.Context, attrs ...attribute.KeyValue) context.Context {
	kvs := append(Attributes(ctx).ToSlice(), attrs...)
	set := attribute.NewSet(kvs...)
	return context.WithValue(ctx, attributesCtxKey, &set)
}

// Attributes returns all attributes stored in the context.
func Attributes(ctx context.Context) *attribute.Set {
	if set, ok := ctx.Value(attributesCtxKey).(*attribute.Set); ok {
		return set
	}
	return attribute.EmptySet()
}
