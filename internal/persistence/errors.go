package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConstraintViolation is returned when a check constraint rejects a write.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a referenced record is missing.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)

// ConflictError reports that a candidate reservation overlaps existing ones
// for the same space and date. Existing carries the colliding rows with
// their owning Person attached, ordered by start time.
type ConflictError struct {
	SpaceID  int64
	Date     string
	Existing []Reservation
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("persistence: %d overlapping reservation(s) for space %d on %s", len(e.Existing), e.SpaceID, e.Date)
}

// QuotaError reports that a person already holds the weekly maximum of
// reservations within the candidate's week.
type QuotaError struct {
	PersonID  int64
	WeekStart string
	WeekEnd   string
	Count     int
}

// Error implements the error interface.
func (e *QuotaError) Error() string {
	return fmt.Sprintf("persistence: person %d holds %d reservation(s) in week %s to %s", e.PersonID, e.Count, e.WeekStart, e.WeekEnd)
}
