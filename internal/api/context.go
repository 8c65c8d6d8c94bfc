package api

import (
	"context"
)

type contextKey string

const keyPrefixContextKey contextKey = "api_key_prefix"

// KeyPrefixFromContext returns the masked API key of an authenticated request
func KeyPrefixFromContext(ctx context.Context) string {
	prefix, _ := ctx.Value(keyPrefixContextKey).(string)
	return prefix
}

// ContextWithKeyPrefix stores the masked API key in the context
func ContextWithKeyPrefix(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, keyPrefixContextKey, prefix)
}
