package booking

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a calendar date string cannot be parsed.
var ErrInvalidDate = errors.New("booking: invalid date")

// dateLayout is the only accepted wire format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a timezone-free calendar date. The zero value is not a valid date.
type Date struct {
	t time.Time
}

// ParseDate parses a strict "YYYY-MM-DD" string. Inputs that parse but do
// not round-trip (for example "2024-13-40", which time.Parse would reject,
// or "2024-2-3" with missing padding) are rejected.
func ParseDate(value string) (Date, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	if parsed.Format(dateLayout) != value {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return Date{t: parsed}, nil
}

// DateOf truncates an instant to its calendar date in the instant's location.
func DateOf(instant time.Time) Date {
	year, month, day := instant.Date()
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String renders the "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Equal reports whether both values name the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// Weekday returns the day of week for the date.
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// WeekBounds returns the Monday and Sunday, both inclusive, of the week
// containing d. Weeks run Monday through Sunday, so a Sunday belongs to the
// week whose Monday precedes it by six days. This method is the sole source
// of week semantics; quota enforcement must not compute membership any
// other way.
func (d Date) WeekBounds() (weekStart, weekEnd Date) {
	// In Go, Monday == 1 and Sunday == 0.
	offset := (int(d.t.Weekday()) + 6) % 7
	weekStart = d.AddDays(-offset)
	weekEnd = weekStart.AddDays(6)
	return weekStart, weekEnd
}
