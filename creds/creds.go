// Package creds propagates the caller's API key through the request context.
// The key is attached when a transport request arrives and read by the proxy
// when it executes statements; it is never stored outside the context, so
// concurrent requests cannot observe each other's credentials.
package creds

import (
	"context"
	"net/http"
)

// apiKeyContextKey is the key type for storing the API key in context.Context.
type apiKeyContextKey struct{}

// WithKey returns a new context carrying the given API key.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, apiKeyContextKey{}, key)
}

// FromContext returns the API key attached to the context, or "" when none
// was attached.
func FromContext(ctx context.Context) string {
	key, _ := ctx.Value(apiKeyContextKey{}).(string)
	return key
}

// HTTPContextFunc extracts the caller's API key from an inbound HTTP request
// (the api_key query parameter, falling back to the X-API-Key header) and
// attaches it to the request context. It matches the SSE transport's context
// function signature so it can be passed to the server directly.
func HTTPContextFunc(ctx context.Context, r *http.Request) context.Context {
	key := r.URL.Query().Get("api_key")
	if key == "" {
		key = r.Header.Get("X-API-Key")
	}
	if key == "" {
		return ctx
	}
	return WithKey(ctx, key)
}
