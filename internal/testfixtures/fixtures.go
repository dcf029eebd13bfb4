package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/workspace-reservations/internal/persistence"
)

var (
	personCounter      uint64
	spaceCounter       uint64
	reservationCounter uint64
)

// referenceTime is a Monday, so fixture dates derived from it stay inside
// one Monday-Sunday quota week unless a test moves them.
var referenceTime = time.Date(2030, time.March, 11, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns the calendar date of ReferenceTime in canonical
// "YYYY-MM-DD" form.
func ReferenceDate() string {
	return referenceTime.Format("2006-01-02")
}

// PersonOption configures a generated person fixture.
type PersonOption func(*persistence.Person)

// NewPersonFixture returns a deterministic person with optional overrides.
func NewPersonFixture(opts ...PersonOption) persistence.Person {
	idx := atomic.AddUint64(&personCounter, 1)
	fixture := persistence.Person{
		Email: fmt.Sprintf("person-%03d@example.com", idx),
		Role:  "client",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithPersonEmail overrides the generated email address.
func WithPersonEmail(email string) PersonOption {
	return func(p *persistence.Person) {
		p.Email = email
	}
}

// WithPersonRole overrides the generated role.
func WithPersonRole(role string) PersonOption {
	return func(p *persistence.Person) {
		p.Role = role
	}
}

// SpaceOption configures a generated space fixture.
type SpaceOption func(*persistence.Space)

// NewSpaceFixture returns a deterministic space with optional overrides.
func NewSpaceFixture(opts ...SpaceOption) persistence.Space {
	idx := atomic.AddUint64(&spaceCounter, 1)
	fixture := persistence.Space{
		Name:     fmt.Sprintf("Space %03d", idx),
		Location: fmt.Sprintf("Floor %d", idx%5+1),
		Capacity: 4,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSpaceName overrides the generated name.
func WithSpaceName(name string) SpaceOption {
	return func(s *persistence.Space) {
		s.Name = name
	}
}

// WithSpaceCapacity overrides the generated capacity.
func WithSpaceCapacity(capacity int) SpaceOption {
	return func(s *persistence.Space) {
		s.Capacity = capacity
	}
}

// WithSpaceDescription sets the optional description.
func WithSpaceDescription(description string) SpaceOption {
	return func(s *persistence.Space) {
		s.Description = &description
	}
}

// ReservationOption configures a generated reservation fixture.
type ReservationOption func(*persistence.Reservation)

// NewReservationFixture returns a deterministic reservation with optional
// overrides. Slots advance by an hour per fixture so defaults never
// overlap within a space.
func NewReservationFixture(personID, spaceID int64, opts ...ReservationOption) persistence.Reservation {
	idx := atomic.AddUint64(&reservationCounter, 1)
	startHour := 8 + int(idx)%10
	fixture := persistence.Reservation{
		PersonID:  personID,
		SpaceID:   spaceID,
		Date:      ReferenceDate(),
		StartTime: fmt.Sprintf("%02d:00", startHour),
		EndTime:   fmt.Sprintf("%02d:00", startHour+1),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithReservationDate overrides the generated date.
func WithReservationDate(date string) ReservationOption {
	return func(r *persistence.Reservation) {
		r.Date = date
	}
}

// WithReservationSlot overrides the generated start and end times.
func WithReservationSlot(start, end string) ReservationOption {
	return func(r *persistence.Reservation) {
		r.StartTime = start
		r.EndTime = end
	}
}

// WeekOf returns the Monday-Sunday range containing the reference date.
func WeekOf() persistence.WeekRange {
	offset := (int(referenceTime.Weekday()) + 6) % 7
	start := referenceTime.AddDate(0, 0, -offset)
	return persistence.WeekRange{
		Start: start.Format("2006-01-02"),
		End:   start.AddDate(0, 0, 6).Format("2006-01-02"),
	}
}
