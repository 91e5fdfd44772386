package jwt

import (
	"context"
	"net/http"
	"strings"

	"learnloop/internal/pkg/logx"
)

// Context key type for storing the Payload, preventing collisions with other packages.
type contextKey string

const (
	// ContextAuthPayloadKey is the key under which the parsed identity Payload
	// is stored in the request Context.
	ContextAuthPayloadKey contextKey = "auth_payload"

	// ContextBearerTokenKey is the key under which the raw bearer token string
	// is stored, so downstream calls can forward it without re-reading headers.
	ContextBearerTokenKey contextKey = "bearer_token"
)

// IdentityExtractorMiddleware extracts and validates the bearer token from the
// Authorization header. On success it injects both the Payload and the raw
// token into the Context. It never interrupts the request (no 401): a missing
// or invalid token simply leaves the caller anonymous, and each handler decides
// what anonymous access means for its page.
func IdentityExtractorMiddleware(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}
			tokenString := parts[1]

			payload, err := ParseToken(tokenString, secretKey)
			if err != nil {
				logx.Warn("Invalid or expired bearer token, treating caller as anonymous", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextAuthPayloadKey, payload)
			ctx = context.WithValue(ctx, ContextBearerTokenKey, tokenString)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPayloadFromContext safely extracts the authenticated Payload from the
// request Context. A nil return means the caller is anonymous.
func GetPayloadFromContext(r *http.Request) *Payload {
	payload, ok := r.Context().Value(ContextAuthPayloadKey).(*Payload)
	if !ok {
		return nil
	}
	return payload
}

// GetBearerFromContext returns the raw bearer token for the request, or the
// empty string for anonymous callers.
func GetBearerFromContext(r *http.Request) string {
	token, ok := r.Context().Value(ContextBearerTokenKey).(string)
	if !ok {
		return ""
	}
	return token
}
