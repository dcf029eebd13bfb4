package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/workspace-reservations/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// ErrorKind maps sentinel and structured errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	case errors.Is(err, ErrPastDate):
		return "past_date"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	}

	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		return "conflict"
	}
	var quotaErr *QuotaExceededError
	if errors.As(err, &quotaErr) {
		return "quota_exceeded"
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return "store_failure"
	}

	return "unexpected"
}
