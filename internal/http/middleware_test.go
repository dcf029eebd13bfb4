package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/workspace-reservations/internal/application"
)

type apiKeyVerifierStub struct {
	accepted string
}

func (s *apiKeyVerifierStub) VerifyAPIKey(ctx context.Context, presented string) error {
	if presented == s.accepted {
		return nil
	}
	return application.ErrUnauthorized
}

type identityVerifierStub struct {
	identity application.Identity
	err      error
}

func (s *identityVerifierStub) VerifyIdentityToken(ctx context.Context, tokenString string) (application.Identity, error) {
	if s.err != nil {
		return application.Identity{}, s.err
	}
	return s.identity, nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

func TestRequireAPIKey(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAPIKey(&apiKeyVerifierStub{accepted: "service-key"}, nil)(next)

	t.Run("missing key", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/persons", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if body := decodeError(t, rec); body.Error != errMissingAPIKey.Error() {
			t.Fatalf("unexpected error body: %q", body.Error)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/persons", nil)
		req.Header.Set("X-API-Key", "nope")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if body := decodeError(t, rec); body.Error != errInvalidAPIKey.Error() {
			t.Fatalf("unexpected error body: %q", body.Error)
		}
	})

	t.Run("header key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/persons", nil)
		req.Header.Set("X-API-Key", "service-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("bearer key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/persons", nil)
		req.Header.Set("Authorization", "Bearer service-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestRequireIdentity(t *testing.T) {
	t.Parallel()

	var seen application.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing token", func(t *testing.T) {
		handler := RequireIdentity(&identityVerifierStub{}, nil)(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reservations/my", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if body := decodeError(t, rec); body.Error != errMissingToken.Error() {
			t.Fatalf("unexpected error body: %q", body.Error)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		handler := RequireIdentity(&identityVerifierStub{err: errors.New("bad signature")}, nil)(next)
		req := httptest.NewRequest(http.MethodGet, "/api/reservations/my", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("identity attached", func(t *testing.T) {
		handler := RequireIdentity(&identityVerifierStub{
			identity: application.Identity{Email: "client@workspace.com", Role: "client"},
		}, nil)(next)
		req := httptest.NewRequest(http.MethodGet, "/api/reservations/my", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if seen.Email != "client@workspace.com" {
			t.Fatalf("expected identity in context, got %+v", seen)
		}
	})
}
