package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned when a time-of-day string cannot be parsed.
var ErrInvalidTime = errors.New("booking: invalid time of day")

// TimeOfDay is a minute-granularity clock time expressed as minutes since
// midnight. Values are always in [0, 1440).
type TimeOfDay int

// ParseTimeOfDay parses "H:MM" or "HH:MM" with hour 0-23 and minute 0-59.
// Seconds, signs, and blanks are rejected.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	hourPart, minutePart, ok := strings.Cut(value, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	if len(hourPart) < 1 || len(hourPart) > 2 || len(minutePart) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	if !allDigits(hourPart) || !allDigits(minutePart) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}

	return TimeOfDay(hour*60 + minute), nil
}

// String renders the canonical zero-padded "HH:MM" form. The canonical form
// is what gets persisted, so lexicographic comparison in SQL agrees with
// numeric comparison here.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
