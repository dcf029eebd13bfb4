package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/workspace-reservations/internal/application"
	"github.com/example/workspace-reservations/internal/logging"
)

// APIKeyVerifier checks the service API key guarding every route.
type APIKeyVerifier interface {
	VerifyAPIKey(ctx context.Context, presented string) error
}

// IdentityVerifier resolves the caller from a signed identity token.
type IdentityVerifier interface {
	VerifyIdentityToken(ctx context.Context, tokenString string) (application.Identity, error)
}

// RequireAPIKey rejects requests that do not carry a valid service API key
// in the X-API-Key header or as an Authorization bearer value.
func RequireAPIKey(verifier APIKeyVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				key = bearerValue(r)
			}
			if key == "" {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingAPIKey)
				return
			}

			if err := verifier.VerifyAPIKey(r.Context(), key); err != nil {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errInvalidAPIKey)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity verifies the Authorization bearer token and attaches the
// resolved identity to the request context.
func RequireIdentity(verifier IdentityVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerValue(r)
			if token == "" {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingToken)
				return
			}

			identity, err := verifier.VerifyIdentityToken(r.Context(), token)
			if err != nil {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errInvalidToken)
				return
			}

			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger attaches a request-scoped logger carrying a generated
// request id, and records request start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With(
				"request_id", uuid.NewString(),
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}

func bearerValue(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	value := strings.TrimPrefix(header, "Bearer ")
	if value == header {
		return ""
	}
	return strings.TrimSpace(value)
}
