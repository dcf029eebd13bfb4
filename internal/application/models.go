package application

import "github.com/example/workspace-reservations/internal/persistence"

// PersonInput captures caller provided person fields.
type PersonInput struct {
	Email string
	Role  string
}

// PersonPatch captures a partial person update; nil fields keep their
// stored values.
type PersonPatch struct {
	Email *string
	Role  *string
}

// SpaceInput captures caller provided space fields.
type SpaceInput struct {
	Name        string
	Location    string
	Capacity    int
	Description *string
}

// SpacePatch captures a partial space update; nil fields keep their stored
// values.
type SpacePatch struct {
	Name        *string
	Location    *string
	Capacity    *int
	Description *string
}

// ReservationInput captures caller provided reservation fields for
// creation. Date is "YYYY-MM-DD"; StartTime and EndTime are "HH:MM".
type ReservationInput struct {
	PersonID  int64
	SpaceID   int64
	Date      string
	StartTime string
	EndTime   string
}

// ReservationPatch captures a partial reservation update; nil fields keep
// their stored values. The effective reservation is the stored row with
// the present fields applied on top, and create and update run the same
// checks against it.
type ReservationPatch struct {
	PersonID  *int64
	SpaceID   *int64
	Date      *string
	StartTime *string
	EndTime   *string
}

// PageParams selects a slice of a listing. Out-of-range values fall back
// to page 1 and a page size of 10; page size is capped at 100.
type PageParams struct {
	Page     int
	PageSize int
}

// Pagination describes the position of a returned page within the full
// listing.
type Pagination struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// ReservationPage is one page of reservations with pagination metadata.
type ReservationPage struct {
	Reservations []persistence.Reservation
	Pagination   Pagination
}

// Identity is the authenticated caller resolved from a verified identity
// token.
type Identity struct {
	Email string
	Role  string
}
