package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/example/workspace-reservations/internal/booking"
	"github.com/example/workspace-reservations/internal/persistence"
)

// ReservationService is the admission controller for reservations. Every
// create and update runs the same gauntlet: format validation, interval
// validation, past-date rejection, reference checks, then the overlap and
// weekly quota checks, which execute inside the repository's write
// transaction so concurrent admissions cannot both pass.
type ReservationService struct {
	reservations persistence.ReservationRepository
	persons      persistence.PersonRepository
	spaces       persistence.SpaceRepository
	now          func() time.Time
	logger       *slog.Logger
}

// NewReservationService wires dependencies for reservation operations. now
// supplies the current instant for past-date checks; pass time.Now in
// production.
func NewReservationService(
	reservations persistence.ReservationRepository,
	persons persistence.PersonRepository,
	spaces persistence.SpaceRepository,
	now func() time.Time,
	logger *slog.Logger,
) *ReservationService {
	if now == nil {
		now = time.Now
	}
	return &ReservationService{
		reservations: reservations,
		persons:      persons,
		spaces:       spaces,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

// CreateReservation admits a new reservation. Dates and times are
// normalised to their canonical "YYYY-MM-DD" and "HH:MM" forms before they
// reach storage, so single-digit hours compare correctly.
func (s *ReservationService) CreateReservation(ctx context.Context, input ReservationInput) (persistence.Reservation, error) {
	date, err := parseDateField(input.Date)
	if err != nil {
		return persistence.Reservation{}, err
	}
	interval, err := parseIntervalFields(input.StartTime, input.EndTime)
	if err != nil {
		return persistence.Reservation{}, err
	}
	if date.Before(booking.DateOf(s.now())) {
		return persistence.Reservation{}, &ValidationError{Reason: ErrPastDate, Message: "Cannot create reservations for past dates"}
	}

	if _, err := s.persons.GetPerson(ctx, input.PersonID); err != nil {
		return persistence.Reservation{}, s.mapReferenceError(ctx, "create_reservation", KindPerson, err)
	}
	if _, err := s.spaces.GetSpace(ctx, input.SpaceID); err != nil {
		return persistence.Reservation{}, s.mapReferenceError(ctx, "create_reservation", KindSpace, err)
	}

	weekStart, weekEnd := date.WeekBounds()
	reservation, err := s.reservations.CreateReservation(ctx, persistence.Reservation{
		PersonID:  input.PersonID,
		SpaceID:   input.SpaceID,
		Date:      date.String(),
		StartTime: interval.Start.String(),
		EndTime:   interval.End.String(),
	}, persistence.WeekRange{Start: weekStart.String(), End: weekEnd.String()})
	if err != nil {
		return persistence.Reservation{}, s.mapError(ctx, "create_reservation", err)
	}

	serviceLogger(ctx, s.logger, "reservations", "create_reservation",
		"reservation_id", reservation.ID,
		"space_id", reservation.SpaceID,
		"date", reservation.Date,
	).InfoContext(ctx, "reservation created")
	return reservation, nil
}

// UpdateReservation reschedules an existing reservation. The effective
// reservation is the stored row with the present patch fields applied, and
// it passes through the same checks as a new admission, with two
// exceptions: the row is excluded from its own overlap check, and the
// weekly quota is re-counted only when the owner or the week changed.
func (s *ReservationService) UpdateReservation(ctx context.Context, id int64, patch ReservationPatch) (persistence.Reservation, error) {
	existing, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return persistence.Reservation{}, s.mapReferenceError(ctx, "update_reservation", KindReservation, err)
	}

	effective, err := mergeReservationPatch(existing, patch)
	if err != nil {
		return persistence.Reservation{}, err
	}

	date, err := booking.ParseDate(effective.Date)
	if err != nil {
		return persistence.Reservation{}, invalidFormat("Invalid date format. Use YYYY-MM-DD")
	}
	if effective.Date != existing.Date && date.Before(booking.DateOf(s.now())) {
		return persistence.Reservation{}, &ValidationError{Reason: ErrPastDate, Message: "Cannot create reservations for past dates"}
	}

	if effective.PersonID != existing.PersonID {
		if _, err := s.persons.GetPerson(ctx, effective.PersonID); err != nil {
			return persistence.Reservation{}, s.mapReferenceError(ctx, "update_reservation", KindPerson, err)
		}
	}
	if effective.SpaceID != existing.SpaceID {
		if _, err := s.spaces.GetSpace(ctx, effective.SpaceID); err != nil {
			return persistence.Reservation{}, s.mapReferenceError(ctx, "update_reservation", KindSpace, err)
		}
	}

	weekStart, weekEnd := date.WeekBounds()
	previousWeekStart, _ := mustWeekBounds(existing.Date)
	enforceQuota := effective.PersonID != existing.PersonID || !weekStart.Equal(previousWeekStart)

	updated, err := s.reservations.UpdateReservation(ctx, effective,
		persistence.WeekRange{Start: weekStart.String(), End: weekEnd.String()}, enforceQuota)
	if err != nil {
		return persistence.Reservation{}, s.mapError(ctx, "update_reservation", err)
	}

	serviceLogger(ctx, s.logger, "reservations", "update_reservation",
		"reservation_id", updated.ID,
		"space_id", updated.SpaceID,
		"date", updated.Date,
	).InfoContext(ctx, "reservation updated")
	return updated, nil
}

// GetReservation retrieves a reservation with its owner and space attached.
func (s *ReservationService) GetReservation(ctx context.Context, id int64) (persistence.Reservation, error) {
	reservation, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return persistence.Reservation{}, s.mapReferenceError(ctx, "get_reservation", KindReservation, err)
	}
	return reservation, nil
}

// ListReservations returns one page of all reservations ordered by date
// then start time.
func (s *ReservationService) ListReservations(ctx context.Context, params PageParams) (ReservationPage, error) {
	page := normalizePage(params)
	reservations, total, err := s.reservations.ListReservations(ctx, persistence.PageRequest{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		return ReservationPage{}, s.mapError(ctx, "list_reservations", err)
	}
	return newReservationPage(reservations, page, total), nil
}

// MyReservations returns one page of the reservations owned by the person
// with the given email, most recent date first.
func (s *ReservationService) MyReservations(ctx context.Context, email string, params PageParams) (ReservationPage, error) {
	person, err := s.persons.GetPersonByEmail(ctx, email)
	if err != nil {
		return ReservationPage{}, s.mapReferenceError(ctx, "my_reservations", KindUser, err)
	}

	page := normalizePage(params)
	reservations, total, err := s.reservations.ListReservationsForPerson(ctx, person.ID, persistence.PageRequest{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		return ReservationPage{}, s.mapError(ctx, "my_reservations", err)
	}
	return newReservationPage(reservations, page, total), nil
}

// DeleteReservation removes a reservation.
func (s *ReservationService) DeleteReservation(ctx context.Context, id int64) error {
	if err := s.reservations.DeleteReservation(ctx, id); err != nil {
		return s.mapReferenceError(ctx, "delete_reservation", KindReservation, err)
	}
	serviceLogger(ctx, s.logger, "reservations", "delete_reservation", "reservation_id", id).InfoContext(ctx, "reservation deleted")
	return nil
}

// mergeReservationPatch validates the present patch fields and applies them
// onto the stored row, returning the effective reservation with canonical
// date and time strings.
func mergeReservationPatch(existing persistence.Reservation, patch ReservationPatch) (persistence.Reservation, error) {
	effective := existing
	effective.Person = nil
	effective.Space = nil

	if patch.PersonID != nil {
		effective.PersonID = *patch.PersonID
	}
	if patch.SpaceID != nil {
		effective.SpaceID = *patch.SpaceID
	}
	if patch.Date != nil {
		date, err := booking.ParseDate(*patch.Date)
		if err != nil {
			return persistence.Reservation{}, invalidFormat("Invalid date format. Use YYYY-MM-DD")
		}
		effective.Date = date.String()
	}
	if patch.StartTime != nil {
		start, err := booking.ParseTimeOfDay(*patch.StartTime)
		if err != nil {
			return persistence.Reservation{}, invalidFormat("Invalid time format. Use HH:mm")
		}
		effective.StartTime = start.String()
	}
	if patch.EndTime != nil {
		end, err := booking.ParseTimeOfDay(*patch.EndTime)
		if err != nil {
			return persistence.Reservation{}, invalidFormat("Invalid time format. Use HH:mm")
		}
		effective.EndTime = end.String()
	}

	if patch.StartTime != nil || patch.EndTime != nil {
		start, err := booking.ParseTimeOfDay(effective.StartTime)
		if err != nil {
			return persistence.Reservation{}, invalidFormat("Invalid time format. Use HH:mm")
		}
		end, err := booking.ParseTimeOfDay(effective.EndTime)
		if err != nil {
			return persistence.Reservation{}, invalidFormat("Invalid time format. Use HH:mm")
		}
		if !(booking.Interval{Start: start, End: end}).Valid() {
			return persistence.Reservation{}, &ValidationError{Reason: ErrInvalidInterval, Message: "End time must be after start time"}
		}
	}

	return effective, nil
}

func parseDateField(value string) (booking.Date, error) {
	date, err := booking.ParseDate(value)
	if err != nil {
		return booking.Date{}, invalidFormat("Invalid date format. Use YYYY-MM-DD")
	}
	return date, nil
}

func parseIntervalFields(startValue, endValue string) (booking.Interval, error) {
	start, err := booking.ParseTimeOfDay(startValue)
	if err != nil {
		return booking.Interval{}, invalidFormat("Invalid time format. Use HH:mm")
	}
	end, err := booking.ParseTimeOfDay(endValue)
	if err != nil {
		return booking.Interval{}, invalidFormat("Invalid time format. Use HH:mm")
	}

	interval := booking.Interval{Start: start, End: end}
	if !interval.Valid() {
		return booking.Interval{}, &ValidationError{Reason: ErrInvalidInterval, Message: "End time must be after start time"}
	}
	return interval, nil
}

// mustWeekBounds computes week bounds for a date string already stored in
// canonical form.
func mustWeekBounds(value string) (booking.Date, booking.Date) {
	date, err := booking.ParseDate(value)
	if err != nil {
		return booking.Date{}, booking.Date{}
	}
	return date.WeekBounds()
}

func normalizePage(params PageParams) PageParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 10
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}
	return params
}

func newReservationPage(reservations []persistence.Reservation, page PageParams, total int) ReservationPage {
	if reservations == nil {
		reservations = []persistence.Reservation{}
	}
	return ReservationPage{
		Reservations: reservations,
		Pagination: Pagination{
			Page:       page.Page,
			PageSize:   page.PageSize,
			Total:      total,
			TotalPages: (total + page.PageSize - 1) / page.PageSize,
		},
	}
}

// mapReferenceError converts a persistence not-found into the named entity
// kind; anything else goes through the generic mapping.
func (s *ReservationService) mapReferenceError(ctx context.Context, op string, kind EntityKind, err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return &NotFoundError{Kind: kind}
	}
	return s.mapError(ctx, op, err)
}

func (s *ReservationService) mapError(ctx context.Context, op string, err error) error {
	var conflictErr *persistence.ConflictError
	if errors.As(err, &conflictErr) {
		details := make([]ConflictDetail, 0, len(conflictErr.Existing))
		for _, r := range conflictErr.Existing {
			detail := ConflictDetail{StartTime: r.StartTime, EndTime: r.EndTime}
			if r.Person != nil {
				detail.OwnerEmail = r.Person.Email
			}
			details = append(details, detail)
		}
		return &ConflictError{Date: conflictErr.Date, Details: details}
	}

	var quotaErr *persistence.QuotaError
	if errors.As(err, &quotaErr) {
		return &QuotaExceededError{
			WeekStart: quotaErr.WeekStart,
			WeekEnd:   quotaErr.WeekEnd,
			Count:     quotaErr.Count,
		}
	}

	if errors.Is(err, persistence.ErrNotFound) {
		return &NotFoundError{Kind: KindReservation}
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		// A referenced row vanished between the reference check and the write.
		return &NotFoundError{Kind: KindPerson}
	}

	serviceLogger(ctx, s.logger, "reservations", op).ErrorContext(ctx, "storage failure", "error", err)
	return &StoreError{Op: op, Err: err}
}
