package application

import (
	"errors"
	"testing"
)

func TestConflictErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ConflictError{
		Date: "2030-03-15",
		Details: []ConflictDetail{
			{StartTime: "10:00", EndTime: "11:00", OwnerEmail: "client@workspace.com"},
			{StartTime: "11:30", EndTime: "12:00"},
		},
	}

	want := "Time slot conflict detected for this space on 2030-03-15. " +
		"Existing reservations: 10:00-11:00 (reserved by client@workspace.com), 11:30-12:00 (reserved by unknown)"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestNotFoundErrorMatchesSentinel(t *testing.T) {
	t.Parallel()

	for _, kind := range []EntityKind{KindPerson, KindSpace, KindReservation, KindUser} {
		err := &NotFoundError{Kind: kind}
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected %v to match ErrNotFound", err)
		}
		if err.Error() != string(kind)+" not found" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{invalidFormat("Invalid date format. Use YYYY-MM-DD"), "invalid_format"},
		{&ValidationError{Reason: ErrInvalidInterval, Message: "End time must be after start time"}, "invalid_interval"},
		{&ValidationError{Reason: ErrPastDate, Message: "Cannot create reservations for past dates"}, "past_date"},
		{&NotFoundError{Kind: KindSpace}, "not_found"},
		{ErrEmailTaken, "email_taken"},
		{ErrUnauthorized, "unauthorized"},
		{&ConflictError{Date: "2030-03-15"}, "conflict"},
		{&QuotaExceededError{WeekStart: "2030-03-11", WeekEnd: "2030-03-17", Count: 3}, "quota_exceeded"},
		{&StoreError{Op: "create_reservation", Err: errors.New("disk gone")}, "store_failure"},
		{errors.New("mystery"), "unexpected"},
		{nil, ""},
	}

	for _, tc := range tests {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
