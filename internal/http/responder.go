package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/workspace-reservations/internal/application"
	"github.com/example/workspace-reservations/internal/logging"
)

var (
	errBadRequestBody       = errors.New("Invalid request body")
	errInvalidPersonID      = errors.New("Invalid person ID. Must be a number.")
	errInvalidSpaceID       = errors.New("Invalid space ID. Must be a number.")
	errInvalidReservationID = errors.New("Invalid reservation ID. Must be a number.")
	errInvalidPage          = errors.New("Page must be a positive integer")
	errInvalidPageSize      = errors.New("Page size must be between 1 and 100")
	errMissingAPIKey        = errors.New("API key is required. Include X-API-Key header or Authorization: Bearer <key>")
	errInvalidAPIKey        = errors.New("Invalid API key")
	errMissingToken         = errors.New("Identity token is required. Include Authorization: Bearer <token>")
	errInvalidToken         = errors.New("Invalid or expired identity token")
)

// apiResponse is the success envelope every endpoint shares.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// errorResponse is the failure envelope every endpoint shares.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// paginatedResponse wraps a listing page with its position metadata.
type paginatedResponse struct {
	Success    bool          `json:"success"`
	Data       any           `json:"data"`
	Pagination paginationDTO `json:"pagination"`
}

type paginationDTO struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		message = err.Error()
	}
	r.writeJSON(ctx, w, status, errorResponse{Success: false, Error: message})
}

// handleServiceError translates application errors into wire responses.
// Business rejections carry their own caller-facing messages; storage and
// unexpected failures are reported without internals.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, nil)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, application.ErrInvalidFormat),
		errors.Is(err, application.ErrInvalidInterval),
		errors.Is(err, application.ErrPastDate):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, application.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, application.ErrUnauthorized):
		status = http.StatusUnauthorized
	default:
		var conflictErr *application.ConflictError
		var quotaErr *application.QuotaExceededError
		if errors.As(err, &conflictErr) || errors.As(err, &quotaErr) {
			status = http.StatusConflict
		}
	}

	if status == http.StatusInternalServerError {
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "error", err, "error_kind", application.ErrorKind(err))
		r.writeError(ctx, w, status, nil)
		return
	}

	r.writeError(ctx, w, status, err)
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
