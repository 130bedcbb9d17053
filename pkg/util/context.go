package util

import (
	"context"
)

type key string

// WithRequestID returns a context carrying the given request id, or a
// freshly generated one if id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	return ContextWithRequestID(ctx, id)
}

// GetRequestID returns the request id carried by ctx, or the empty string
// if none was set.
func GetRequestID(ctx context.Context) string {
	return FromContext(ctx)
}
