package persistence

import "context"

// PersonRepository exposes CRUD operations for persons.
type PersonRepository interface {
	CreatePerson(ctx context.Context, person Person) (Person, error)
	UpdatePerson(ctx context.Context, person Person) (Person, error)
	GetPerson(ctx context.Context, id int64) (Person, error)
	GetPersonByEmail(ctx context.Context, email string) (Person, error)
	ListPersons(ctx context.Context) ([]Person, error)
	DeletePerson(ctx context.Context, id int64) error
}

// SpaceRepository exposes CRUD operations for spaces.
type SpaceRepository interface {
	CreateSpace(ctx context.Context, space Space) (Space, error)
	UpdateSpace(ctx context.Context, space Space) (Space, error)
	GetSpace(ctx context.Context, id int64) (Space, error)
	ListSpaces(ctx context.Context) ([]Space, error)
	DeleteSpace(ctx context.Context, id int64) error
}

// ReservationRepository stores reservations and enforces admission
// invariants transactionally.
//
// CreateReservation and UpdateReservation re-run the overlap and quota
// checks inside the same transaction as the write, so two concurrent
// admissions cannot both pass their checks and both commit. A write that
// loses such a race fails with the same *ConflictError or *QuotaError a
// sequential rejection would produce.
type ReservationRepository interface {
	// CreateReservation inserts the reservation after checking, within one
	// transaction, that no overlapping reservation exists for the same
	// space and date and that the owner holds fewer than the weekly quota
	// of reservations inside week.
	CreateReservation(ctx context.Context, reservation Reservation, week WeekRange) (Reservation, error)

	// UpdateReservation applies the field values of reservation to the row
	// with reservation.ID under the same in-transaction overlap check,
	// excluding the row itself. The quota check runs only when
	// enforceQuota is set.
	UpdateReservation(ctx context.Context, reservation Reservation, week WeekRange, enforceQuota bool) (Reservation, error)

	// GetReservation returns the reservation with its owning Person and
	// Space attached.
	GetReservation(ctx context.Context, id int64) (Reservation, error)

	// ListReservations returns one page ordered by date then start time
	// ascending, along with the total row count.
	ListReservations(ctx context.Context, page PageRequest) ([]Reservation, int, error)

	// ListReservationsForPerson returns one page of the person's
	// reservations ordered by date descending then start time ascending,
	// along with the person's total row count.
	ListReservationsForPerson(ctx context.Context, personID int64, page PageRequest) ([]Reservation, int, error)

	// FindOverlapping returns reservations for the space and date whose
	// intervals overlap [start, end) under the half-open rule, each with
	// its owning Person attached, ordered by start time. excludeID, when
	// non-zero, omits the reservation being rescheduled from its own check.
	FindOverlapping(ctx context.Context, spaceID int64, date, start, end string, excludeID int64) ([]Reservation, error)

	// CountForPersonInRange counts the person's reservations whose date
	// falls within [dateStart, dateEnd] inclusive.
	CountForPersonInRange(ctx context.Context, personID int64, dateStart, dateEnd string) (int, error)

	DeleteReservation(ctx context.Context, id int64) error
}
