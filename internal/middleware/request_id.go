// Package middleware provides the HTTP middleware chain: request
// identity, logging, recovery, response headers and rate limiting.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// ErrRequestIDNotFound is returned when the context carries no request ID.
var ErrRequestIDNotFound = errors.New("request ID not found in context")

// NewRequestIDMiddleware assigns each request a UUID, stores it in the
// request context and echoes it in the X-Request-ID response header.
// An inbound X-Request-ID is honored so upstream proxies can correlate.
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", id)

			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext extracts the request ID set by the middleware.
func RequestIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(requestIDKey).(string)
	if !ok || id == "" {
		return "", ErrRequestIDNotFound
	}
	return id, nil
}
