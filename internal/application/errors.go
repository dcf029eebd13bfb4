package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/workspace-reservations/internal/booking"
)

var (
	// ErrInvalidFormat marks a malformed date or time-of-day string.
	ErrInvalidFormat = errors.New("application: invalid format")
	// ErrInvalidInterval marks an interval whose end is not after its start.
	ErrInvalidInterval = errors.New("application: invalid interval")
	// ErrPastDate marks a reservation date earlier than the current date.
	ErrPastDate = errors.New("application: past date")
	// ErrNotFound is the common target for every NotFoundError kind.
	ErrNotFound = errors.New("application: not found")
	// ErrEmailTaken is returned when a person's email is already in use.
	ErrEmailTaken = errors.New("Email already exists")
	// ErrUnauthorized is returned when a credential fails verification.
	ErrUnauthorized = errors.New("application: unauthorized")
)

// EntityKind names the entity class a NotFoundError refers to.
type EntityKind string

const (
	KindPerson      EntityKind = "Person"
	KindSpace       EntityKind = "Space"
	KindReservation EntityKind = "Reservation"
	KindUser        EntityKind = "User"
)

// NotFoundError reports that a referenced or targeted entity is absent.
type NotFoundError struct {
	Kind EntityKind
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

// Is makes errors.Is(err, ErrNotFound) match every kind.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError carries a caller-facing message for a local validation
// rejection while remaining matchable against its reason sentinel.
type ValidationError struct {
	Reason  error
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes the reason sentinel to errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Reason
}

func invalidFormat(message string) error {
	return &ValidationError{Reason: ErrInvalidFormat, Message: message}
}

// ConflictDetail describes one colliding reservation for messaging.
type ConflictDetail struct {
	StartTime  string
	EndTime    string
	OwnerEmail string
}

// ConflictError reports overlapping reservations for a space and date. The
// message enumerates every colliding interval and its owner's email.
type ConflictError struct {
	Date    string
	Details []ConflictDetail
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		owner := detail.OwnerEmail
		if owner == "" {
			owner = "unknown"
		}
		parts = append(parts, fmt.Sprintf("%s-%s (reserved by %s)", detail.StartTime, detail.EndTime, owner))
	}
	return fmt.Sprintf("Time slot conflict detected for this space on %s. Existing reservations: %s",
		e.Date, strings.Join(parts, ", "))
}

// QuotaExceededError reports that the weekly reservation cap is reached.
// The message states the week's bounds and the current count.
type QuotaExceededError struct {
	WeekStart string
	WeekEnd   string
	Count     int
}

// Error implements the error interface.
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("Client has reached the maximum of %d reservations for the week of %s to %s. Current count: %d",
		booking.WeeklyQuota, e.WeekStart, e.WeekEnd, e.Count)
}

// StoreError wraps an underlying persistence failure so callers can
// distinguish infrastructure faults from business rejections.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}
