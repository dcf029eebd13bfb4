package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/workspace-reservations/internal/booking"
	"github.com/example/workspace-reservations/internal/persistence"
)

const reservationWithOwnerColumns = `
	r.id, r.person_id, r.space_id, r.reservation_date, r.start_time, r.end_time,
	r.created_at, r.updated_at,
	p.id, p.email, p.role, p.created_at, p.updated_at,
	s.id, s.name, s.location, s.capacity, s.description, s.created_at, s.updated_at`

const reservationJoin = `
	FROM reservations r
	JOIN persons p ON p.id = r.person_id
	JOIN spaces s ON s.id = r.space_id`

// CreateReservation inserts the reservation after re-running the overlap
// and quota checks inside the same transaction, closing the window in which
// two concurrent admissions could both pass their checks.
func (s *Store) CreateReservation(ctx context.Context, reservation persistence.Reservation, week persistence.WeekRange) (persistence.Reservation, error) {
	var id int64

	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		conflicts, err := findOverlappingTx(tx, reservation.SpaceID, reservation.Date, reservation.StartTime, reservation.EndTime, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &persistence.ConflictError{SpaceID: reservation.SpaceID, Date: reservation.Date, Existing: conflicts}
		}

		count, err := countForPersonInRangeTx(tx, reservation.PersonID, week.Start, week.End)
		if err != nil {
			return err
		}
		if booking.QuotaReached(count) {
			return &persistence.QuotaError{PersonID: reservation.PersonID, WeekStart: week.Start, WeekEnd: week.End, Count: count}
		}

		now := time.Now().UTC()
		result, err := tx.ExecContext(ctx,
			`INSERT INTO reservations (person_id, space_id, reservation_date, start_time, end_time, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			reservation.PersonID, reservation.SpaceID, reservation.Date, reservation.StartTime, reservation.EndTime, now, now,
		)
		if err != nil {
			return remapWriteError(tx, err, reservation)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return persistence.Reservation{}, err
	}

	return s.GetReservation(ctx, id)
}

// UpdateReservation applies the reservation's field values to the stored
// row under the same in-transaction overlap check, excluding the row
// itself. The quota check runs only when enforceQuota is set.
func (s *Store) UpdateReservation(ctx context.Context, reservation persistence.Reservation, week persistence.WeekRange, enforceQuota bool) (persistence.Reservation, error) {
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		var existingID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM reservations WHERE id = ?`, reservation.ID).Scan(&existingID); err != nil {
			return mapError(err)
		}

		conflicts, err := findOverlappingTx(tx, reservation.SpaceID, reservation.Date, reservation.StartTime, reservation.EndTime, reservation.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &persistence.ConflictError{SpaceID: reservation.SpaceID, Date: reservation.Date, Existing: conflicts}
		}

		if enforceQuota {
			count, err := countForPersonInRangeTx(tx, reservation.PersonID, week.Start, week.End)
			if err != nil {
				return err
			}
			if booking.QuotaReached(count) {
				return &persistence.QuotaError{PersonID: reservation.PersonID, WeekStart: week.Start, WeekEnd: week.End, Count: count}
			}
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE reservations
			 SET person_id = ?, space_id = ?, reservation_date = ?, start_time = ?, end_time = ?, updated_at = ?
			 WHERE id = ?`,
			reservation.PersonID, reservation.SpaceID, reservation.Date, reservation.StartTime, reservation.EndTime, time.Now().UTC(), reservation.ID,
		)
		if err != nil {
			return remapWriteError(tx, err, reservation)
		}
		return nil
	})
	if err != nil {
		return persistence.Reservation{}, err
	}

	return s.GetReservation(ctx, reservation.ID)
}

// GetReservation retrieves a reservation with its owning person and space
// attached.
func (s *Store) GetReservation(ctx context.Context, id int64) (persistence.Reservation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT`+reservationWithOwnerColumns+reservationJoin+` WHERE r.id = ?`, id)

	reservation, err := scanReservationWithOwner(row)
	if err != nil {
		return persistence.Reservation{}, mapError(err)
	}
	return reservation, nil
}

// ListReservations returns one page ordered by date then start time
// ascending, along with the total row count.
func (s *Store) ListReservations(ctx context.Context, page persistence.PageRequest) ([]persistence.Reservation, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT`+reservationWithOwnerColumns+reservationJoin+`
		 ORDER BY r.reservation_date ASC, r.start_time ASC, r.id ASC
		 LIMIT ? OFFSET ?`,
		page.PageSize, page.Offset(),
	)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	reservations, err := collectReservationsWithOwner(rows)
	if err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}

// ListReservationsForPerson returns one page of the person's reservations
// ordered by date descending then start time ascending, along with the
// person's total row count.
func (s *Store) ListReservationsForPerson(ctx context.Context, personID int64, page persistence.PageRequest) ([]persistence.Reservation, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE person_id = ?`, personID,
	).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT`+reservationWithOwnerColumns+reservationJoin+`
		 WHERE r.person_id = ?
		 ORDER BY r.reservation_date DESC, r.start_time ASC, r.id ASC
		 LIMIT ? OFFSET ?`,
		personID, page.PageSize, page.Offset(),
	)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	reservations, err := collectReservationsWithOwner(rows)
	if err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}

// FindOverlapping returns reservations for the space and date whose
// intervals overlap [start, end) under the half-open rule.
func (s *Store) FindOverlapping(ctx context.Context, spaceID int64, date, start, end string, excludeID int64) ([]persistence.Reservation, error) {
	var reservations []persistence.Reservation
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		reservations, err = findOverlappingTx(tx, spaceID, date, start, end, excludeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// CountForPersonInRange counts the person's reservations whose date falls
// within [dateStart, dateEnd] inclusive.
func (s *Store) CountForPersonInRange(ctx context.Context, personID int64, dateStart, dateEnd string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE person_id = ? AND reservation_date BETWEEN ? AND ?`,
		personID, dateStart, dateEnd,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// DeleteReservation removes a reservation by id.
func (s *Store) DeleteReservation(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

// findOverlappingTx runs the half-open interval overlap query within a
// transaction. Times are canonical zero-padded "HH:MM", so the string
// comparisons below agree with numeric comparison.
func findOverlappingTx(tx *sql.Tx, spaceID int64, date, start, end string, excludeID int64) ([]persistence.Reservation, error) {
	query := `SELECT
		r.id, r.person_id, r.space_id, r.reservation_date, r.start_time, r.end_time,
		r.created_at, r.updated_at,
		p.id, p.email, p.role, p.created_at, p.updated_at
	FROM reservations r
	JOIN persons p ON p.id = r.person_id
	WHERE r.space_id = ? AND r.reservation_date = ? AND r.start_time < ? AND r.end_time > ?`
	args := []any{spaceID, date, end, start}

	if excludeID != 0 {
		query += ` AND r.id != ?`
		args = append(args, excludeID)
	}
	query += ` ORDER BY r.start_time ASC, r.id ASC`

	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var reservations []persistence.Reservation
	for rows.Next() {
		var reservation persistence.Reservation
		var person persistence.Person
		if err := rows.Scan(
			&reservation.ID, &reservation.PersonID, &reservation.SpaceID,
			&reservation.Date, &reservation.StartTime, &reservation.EndTime,
			&reservation.CreatedAt, &reservation.UpdatedAt,
			&person.ID, &person.Email, &person.Role, &person.CreatedAt, &person.UpdatedAt,
		); err != nil {
			return nil, mapError(err)
		}
		reservation.Person = &person
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return reservations, nil
}

func countForPersonInRangeTx(tx *sql.Tx, personID int64, dateStart, dateEnd string) (int, error) {
	var count int
	err := tx.QueryRow(
		`SELECT COUNT(*) FROM reservations WHERE person_id = ? AND reservation_date BETWEEN ? AND ?`,
		personID, dateStart, dateEnd,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// remapWriteError converts constraint failures raised by the slot UNIQUE
// backstop into the same ConflictError the in-transaction check produces,
// so a race lost against a writer outside this process is indistinguishable
// from a sequential rejection.
func remapWriteError(tx *sql.Tx, err error, reservation persistence.Reservation) error {
	mapped := mapError(err)
	if !errors.Is(mapped, persistence.ErrDuplicate) {
		return mapped
	}

	conflicts, lookupErr := findOverlappingTx(tx, reservation.SpaceID, reservation.Date, reservation.StartTime, reservation.EndTime, reservation.ID)
	if lookupErr != nil || len(conflicts) == 0 {
		return mapped
	}
	return &persistence.ConflictError{SpaceID: reservation.SpaceID, Date: reservation.Date, Existing: conflicts}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservationWithOwner(row rowScanner) (persistence.Reservation, error) {
	var reservation persistence.Reservation
	var person persistence.Person
	var space persistence.Space
	var description sql.NullString

	err := row.Scan(
		&reservation.ID, &reservation.PersonID, &reservation.SpaceID,
		&reservation.Date, &reservation.StartTime, &reservation.EndTime,
		&reservation.CreatedAt, &reservation.UpdatedAt,
		&person.ID, &person.Email, &person.Role, &person.CreatedAt, &person.UpdatedAt,
		&space.ID, &space.Name, &space.Location, &space.Capacity, &description, &space.CreatedAt, &space.UpdatedAt,
	)
	if err != nil {
		return persistence.Reservation{}, err
	}

	if description.Valid {
		space.Description = &description.String
	}
	reservation.Person = &person
	reservation.Space = &space
	return reservation, nil
}

func collectReservationsWithOwner(rows *sql.Rows) ([]persistence.Reservation, error) {
	var reservations []persistence.Reservation
	for rows.Next() {
		reservation, err := scanReservationWithOwner(rows)
		if err != nil {
			return nil, mapError(err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return reservations, nil
}
