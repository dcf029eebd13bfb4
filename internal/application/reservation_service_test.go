package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/workspace-reservations/internal/persistence"
)

type personRepoStub struct {
	persons map[int64]persistence.Person
	err     error
}

func (s *personRepoStub) CreatePerson(ctx context.Context, person persistence.Person) (persistence.Person, error) {
	return person, s.err
}

func (s *personRepoStub) UpdatePerson(ctx context.Context, person persistence.Person) (persistence.Person, error) {
	return person, s.err
}

func (s *personRepoStub) GetPerson(ctx context.Context, id int64) (persistence.Person, error) {
	if s.err != nil {
		return persistence.Person{}, s.err
	}
	person, ok := s.persons[id]
	if !ok {
		return persistence.Person{}, persistence.ErrNotFound
	}
	return person, nil
}

func (s *personRepoStub) GetPersonByEmail(ctx context.Context, email string) (persistence.Person, error) {
	if s.err != nil {
		return persistence.Person{}, s.err
	}
	for _, person := range s.persons {
		if person.Email == email {
			return person, nil
		}
	}
	return persistence.Person{}, persistence.ErrNotFound
}

func (s *personRepoStub) ListPersons(ctx context.Context) ([]persistence.Person, error) {
	return nil, s.err
}

func (s *personRepoStub) DeletePerson(ctx context.Context, id int64) error {
	return s.err
}

type spaceRepoStub struct {
	spaces map[int64]persistence.Space
	err    error
}

func (s *spaceRepoStub) CreateSpace(ctx context.Context, space persistence.Space) (persistence.Space, error) {
	return space, s.err
}

func (s *spaceRepoStub) UpdateSpace(ctx context.Context, space persistence.Space) (persistence.Space, error) {
	return space, s.err
}

func (s *spaceRepoStub) GetSpace(ctx context.Context, id int64) (persistence.Space, error) {
	if s.err != nil {
		return persistence.Space{}, s.err
	}
	space, ok := s.spaces[id]
	if !ok {
		return persistence.Space{}, persistence.ErrNotFound
	}
	return space, nil
}

func (s *spaceRepoStub) ListSpaces(ctx context.Context) ([]persistence.Space, error) {
	return nil, s.err
}

func (s *spaceRepoStub) DeleteSpace(ctx context.Context, id int64) error {
	return s.err
}

// fakeReservationRepo mirrors the SQLite repository's transactional
// behaviour in memory: overlap and quota checks run against its current
// state before each write.
type fakeReservationRepo struct {
	persons      map[int64]persistence.Person
	reservations []persistence.Reservation
	nextID       int64
	err          error
}

func newFakeReservationRepo(persons map[int64]persistence.Person) *fakeReservationRepo {
	return &fakeReservationRepo{persons: persons, nextID: 1}
}

func (f *fakeReservationRepo) overlapping(spaceID int64, date, start, end string, excludeID int64) []persistence.Reservation {
	var out []persistence.Reservation
	for _, r := range f.reservations {
		if r.SpaceID != spaceID || r.Date != date || r.ID == excludeID {
			continue
		}
		if r.StartTime < end && r.EndTime > start {
			attached := r
			if person, ok := f.persons[r.PersonID]; ok {
				owner := person
				attached.Person = &owner
			}
			out = append(out, attached)
		}
	}
	return out
}

func (f *fakeReservationRepo) countInWeek(personID int64, week persistence.WeekRange, excludeID int64) int {
	count := 0
	for _, r := range f.reservations {
		if r.ID == excludeID {
			continue
		}
		if r.PersonID == personID && r.Date >= week.Start && r.Date <= week.End {
			count++
		}
	}
	return count
}

func (f *fakeReservationRepo) CreateReservation(ctx context.Context, reservation persistence.Reservation, week persistence.WeekRange) (persistence.Reservation, error) {
	if f.err != nil {
		return persistence.Reservation{}, f.err
	}
	if existing := f.overlapping(reservation.SpaceID, reservation.Date, reservation.StartTime, reservation.EndTime, 0); len(existing) > 0 {
		return persistence.Reservation{}, &persistence.ConflictError{SpaceID: reservation.SpaceID, Date: reservation.Date, Existing: existing}
	}
	if count := f.countInWeek(reservation.PersonID, week, 0); count >= 3 {
		return persistence.Reservation{}, &persistence.QuotaError{PersonID: reservation.PersonID, WeekStart: week.Start, WeekEnd: week.End, Count: count}
	}

	reservation.ID = f.nextID
	f.nextID++
	f.reservations = append(f.reservations, reservation)
	return reservation, nil
}

func (f *fakeReservationRepo) UpdateReservation(ctx context.Context, reservation persistence.Reservation, week persistence.WeekRange, enforceQuota bool) (persistence.Reservation, error) {
	if f.err != nil {
		return persistence.Reservation{}, f.err
	}
	idx := -1
	for i, r := range f.reservations {
		if r.ID == reservation.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return persistence.Reservation{}, persistence.ErrNotFound
	}
	if existing := f.overlapping(reservation.SpaceID, reservation.Date, reservation.StartTime, reservation.EndTime, reservation.ID); len(existing) > 0 {
		return persistence.Reservation{}, &persistence.ConflictError{SpaceID: reservation.SpaceID, Date: reservation.Date, Existing: existing}
	}
	if enforceQuota {
		if count := f.countInWeek(reservation.PersonID, week, reservation.ID); count >= 3 {
			return persistence.Reservation{}, &persistence.QuotaError{PersonID: reservation.PersonID, WeekStart: week.Start, WeekEnd: week.End, Count: count}
		}
	}

	f.reservations[idx] = reservation
	return reservation, nil
}

func (f *fakeReservationRepo) GetReservation(ctx context.Context, id int64) (persistence.Reservation, error) {
	if f.err != nil {
		return persistence.Reservation{}, f.err
	}
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return persistence.Reservation{}, persistence.ErrNotFound
}

func (f *fakeReservationRepo) ListReservations(ctx context.Context, page persistence.PageRequest) ([]persistence.Reservation, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	total := len(f.reservations)
	offset := page.Offset()
	if offset >= total {
		return nil, total, nil
	}
	end := offset + page.PageSize
	if end > total {
		end = total
	}
	out := make([]persistence.Reservation, end-offset)
	copy(out, f.reservations[offset:end])
	return out, total, nil
}

func (f *fakeReservationRepo) ListReservationsForPerson(ctx context.Context, personID int64, page persistence.PageRequest) ([]persistence.Reservation, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var owned []persistence.Reservation
	for _, r := range f.reservations {
		if r.PersonID == personID {
			owned = append(owned, r)
		}
	}
	return owned, len(owned), nil
}

func (f *fakeReservationRepo) FindOverlapping(ctx context.Context, spaceID int64, date, start, end string, excludeID int64) ([]persistence.Reservation, error) {
	return f.overlapping(spaceID, date, start, end, excludeID), f.err
}

func (f *fakeReservationRepo) CountForPersonInRange(ctx context.Context, personID int64, dateStart, dateEnd string) (int, error) {
	return f.countInWeek(personID, persistence.WeekRange{Start: dateStart, End: dateEnd}, 0), f.err
}

func (f *fakeReservationRepo) DeleteReservation(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	for i, r := range f.reservations {
		if r.ID == id {
			f.reservations = append(f.reservations[:i], f.reservations[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func fixedClock(value string) func() time.Time {
	instant, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return instant }
}

func newReservationFixture() (*ReservationService, *fakeReservationRepo) {
	persons := map[int64]persistence.Person{
		1: {ID: 1, Email: "client@workspace.com", Role: "client"},
		2: {ID: 2, Email: "other@workspace.com", Role: "client"},
	}
	spaces := map[int64]persistence.Space{
		1: {ID: 1, Name: "Desk A", Location: "Floor 1", Capacity: 1},
		2: {ID: 2, Name: "Room B", Location: "Floor 2", Capacity: 6},
	}
	repo := newFakeReservationRepo(persons)
	svc := NewReservationService(repo, &personRepoStub{persons: persons}, &spaceRepoStub{spaces: spaces},
		fixedClock("2030-03-11 08:00"), nil)
	return svc, repo
}

func TestReservationService_CreateReservation_AdmitsAndNormalises(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()

	created, err := svc.CreateReservation(context.Background(), ReservationInput{
		PersonID:  1,
		SpaceID:   1,
		Date:      "2030-03-15",
		StartTime: "9:00",
		EndTime:   "10:30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.StartTime != "09:00" {
		t.Fatalf("expected canonical start time 09:00, got %q", created.StartTime)
	}
}

func TestReservationService_CreateReservation_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   ReservationInput
		wantErr error
		wantMsg string
	}{
		{
			name:    "malformed date",
			input:   ReservationInput{PersonID: 1, SpaceID: 1, Date: "15-03-2030", StartTime: "10:00", EndTime: "11:00"},
			wantErr: ErrInvalidFormat,
			wantMsg: "Invalid date format. Use YYYY-MM-DD",
		},
		{
			name:    "impossible calendar date",
			input:   ReservationInput{PersonID: 1, SpaceID: 1, Date: "2030-02-30", StartTime: "10:00", EndTime: "11:00"},
			wantErr: ErrInvalidFormat,
			wantMsg: "Invalid date format. Use YYYY-MM-DD",
		},
		{
			name:    "malformed time",
			input:   ReservationInput{PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "25:00", EndTime: "26:00"},
			wantErr: ErrInvalidFormat,
			wantMsg: "Invalid time format. Use HH:mm",
		},
		{
			name:    "zero length interval",
			input:   ReservationInput{PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "10:00", EndTime: "10:00"},
			wantErr: ErrInvalidInterval,
			wantMsg: "End time must be after start time",
		},
		{
			name:    "inverted interval",
			input:   ReservationInput{PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "11:00", EndTime: "10:00"},
			wantErr: ErrInvalidInterval,
			wantMsg: "End time must be after start time",
		},
		{
			name:    "past date",
			input:   ReservationInput{PersonID: 1, SpaceID: 1, Date: "2030-03-10", StartTime: "10:00", EndTime: "11:00"},
			wantErr: ErrPastDate,
			wantMsg: "Cannot create reservations for past dates",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newReservationFixture()
			_, err := svc.CreateReservation(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if err.Error() != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestReservationService_CreateReservation_TodayIsAllowed(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()

	_, err := svc.CreateReservation(context.Background(), ReservationInput{
		PersonID:  1,
		SpaceID:   1,
		Date:      "2030-03-11",
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReservationService_CreateReservation_MissingReferences(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()

	_, err := svc.CreateReservation(context.Background(), ReservationInput{
		PersonID: 99, SpaceID: 1, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	})
	if err == nil || err.Error() != "Person not found" {
		t.Fatalf("expected Person not found, got %v", err)
	}

	_, err = svc.CreateReservation(context.Background(), ReservationInput{
		PersonID: 1, SpaceID: 99, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	})
	if err == nil || err.Error() != "Space not found" {
		t.Fatalf("expected Space not found, got %v", err)
	}
}

func TestReservationService_CreateReservation_ConflictAndAdjacency(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()
	ctx := context.Background()

	if _, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}

	_, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 2, SpaceID: 1, Date: "2030-03-15", StartTime: "10:30", EndTime: "11:30",
	})
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	msg := conflictErr.Error()
	if !strings.Contains(msg, "Time slot conflict detected for this space on 2030-03-15") {
		t.Fatalf("unexpected conflict message: %q", msg)
	}
	if !strings.Contains(msg, "10:00-11:00 (reserved by client@workspace.com)") {
		t.Fatalf("expected existing interval and owner in message, got %q", msg)
	}

	// Back to back intervals share an endpoint and do not conflict.
	if _, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 2, SpaceID: 1, Date: "2030-03-15", StartTime: "11:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("adjacent reservation rejected: %v", err)
	}

	// Same slot in a different space is fine.
	if _, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 2, SpaceID: 2, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Fatalf("other space rejected: %v", err)
	}
}

func TestReservationService_CreateReservation_WeeklyQuota(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()
	ctx := context.Background()

	// Monday through Wednesday of the week of 2030-03-11.
	for _, date := range []string{"2030-03-11", "2030-03-12", "2030-03-13"} {
		if _, err := svc.CreateReservation(ctx, ReservationInput{
			PersonID: 1, SpaceID: 1, Date: date, StartTime: "10:00", EndTime: "11:00",
		}); err != nil {
			t.Fatalf("reservation on %s failed: %v", date, err)
		}
	}

	_, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-14", StartTime: "10:00", EndTime: "11:00",
	})
	var quotaErr *QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	want := "Client has reached the maximum of 3 reservations for the week of 2030-03-11 to 2030-03-17. Current count: 3"
	if quotaErr.Error() != want {
		t.Fatalf("unexpected quota message:\n got %q\nwant %q", quotaErr.Error(), want)
	}

	// Sunday still belongs to the same week.
	if _, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-17", StartTime: "10:00", EndTime: "11:00",
	}); !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError on sunday of same week, got %v", err)
	}

	// The following Monday opens a fresh allowance.
	if _, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-18", StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Fatalf("next week reservation rejected: %v", err)
	}

	// The quota binds per person.
	if _, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 2, SpaceID: 2, Date: "2030-03-14", StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Fatalf("other person's reservation rejected: %v", err)
	}
}

func TestReservationService_UpdateReservation_SelfExcludedFromOverlap(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()
	ctx := context.Background()

	created, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}

	// Extending the same reservation must not conflict with itself.
	end := "11:30"
	updated, err := svc.UpdateReservation(ctx, created.ID, ReservationPatch{EndTime: &end})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.EndTime != "11:30" {
		t.Fatalf("expected end time 11:30, got %q", updated.EndTime)
	}
}

func TestReservationService_UpdateReservation_ConflictWithOther(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()
	ctx := context.Background()

	if _, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}
	second, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 2, SpaceID: 1, Date: "2030-03-15", StartTime: "12:00", EndTime: "13:00",
	})
	if err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}

	start := "10:30"
	end := "11:30"
	_, err = svc.UpdateReservation(ctx, second.ID, ReservationPatch{StartTime: &start, EndTime: &end})
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestReservationService_UpdateReservation_QuotaOnlyWhenOwnerOrWeekChanges(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()
	ctx := context.Background()

	var last persistence.Reservation
	for _, date := range []string{"2030-03-11", "2030-03-12", "2030-03-13"} {
		created, err := svc.CreateReservation(ctx, ReservationInput{
			PersonID: 1, SpaceID: 1, Date: date, StartTime: "10:00", EndTime: "11:00",
		})
		if err != nil {
			t.Fatalf("reservation on %s failed: %v", date, err)
		}
		last = created
	}

	// Moving within the full week is a reschedule, not a new claim.
	newDate := "2030-03-14"
	moved, err := svc.UpdateReservation(ctx, last.ID, ReservationPatch{Date: &newDate})
	if err != nil {
		t.Fatalf("same week move rejected: %v", err)
	}
	if moved.Date != "2030-03-14" {
		t.Fatalf("expected date 2030-03-14, got %q", moved.Date)
	}

	// Fill the following week, then try to move into it.
	for _, date := range []string{"2030-03-18", "2030-03-19", "2030-03-20"} {
		if _, err := svc.CreateReservation(ctx, ReservationInput{
			PersonID: 1, SpaceID: 1, Date: date, StartTime: "10:00", EndTime: "11:00",
		}); err != nil {
			t.Fatalf("reservation on %s failed: %v", date, err)
		}
	}
	crossWeek := "2030-03-21"
	_, err = svc.UpdateReservation(ctx, moved.ID, ReservationPatch{Date: &crossWeek})
	var quotaErr *QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError on cross week move, got %v", err)
	}

	// Handing the reservation to a person at their cap fails too.
	for _, date := range []string{"2030-03-11", "2030-03-12", "2030-03-13"} {
		if _, err := svc.CreateReservation(ctx, ReservationInput{
			PersonID: 2, SpaceID: 2, Date: date, StartTime: "10:00", EndTime: "11:00",
		}); err != nil {
			t.Fatalf("reservation on %s failed: %v", date, err)
		}
	}
	otherPerson := int64(2)
	_, err = svc.UpdateReservation(ctx, moved.ID, ReservationPatch{PersonID: &otherPerson})
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError on owner change, got %v", err)
	}
}

func TestReservationService_UpdateReservation_PastDateOnlyWhenDateChanges(t *testing.T) {
	t.Parallel()

	persons := map[int64]persistence.Person{1: {ID: 1, Email: "client@workspace.com", Role: "client"}}
	spaces := map[int64]persistence.Space{1: {ID: 1, Name: "Desk A", Location: "Floor 1", Capacity: 1}}
	repo := newFakeReservationRepo(persons)
	repo.reservations = []persistence.Reservation{
		{ID: 1, PersonID: 1, SpaceID: 1, Date: "2030-03-01", StartTime: "10:00", EndTime: "11:00"},
	}
	repo.nextID = 2
	svc := NewReservationService(repo, &personRepoStub{persons: persons}, &spaceRepoStub{spaces: spaces},
		fixedClock("2030-03-11 08:00"), nil)

	// Adjusting the time of an already past reservation keeps its date.
	end := "12:00"
	if _, err := svc.UpdateReservation(context.Background(), 1, ReservationPatch{EndTime: &end}); err != nil {
		t.Fatalf("time-only update rejected: %v", err)
	}

	// Moving it to another past date is rejected.
	pastDate := "2030-03-05"
	_, err := svc.UpdateReservation(context.Background(), 1, ReservationPatch{Date: &pastDate})
	if !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
}

func TestReservationService_UpdateReservation_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()
	ctx := context.Background()

	created, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}

	badTime := "10:5"
	if _, err := svc.UpdateReservation(ctx, created.ID, ReservationPatch{StartTime: &badTime}); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}

	// A new start equal to the stored end collapses the interval.
	lateStart := "11:00"
	if _, err := svc.UpdateReservation(ctx, created.ID, ReservationPatch{StartTime: &lateStart}); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}

	if _, err := svc.UpdateReservation(ctx, 999, ReservationPatch{}); err == nil || err.Error() != "Reservation not found" {
		t.Fatalf("expected Reservation not found, got %v", err)
	}

	missingPerson := int64(42)
	if _, err := svc.UpdateReservation(ctx, created.ID, ReservationPatch{PersonID: &missingPerson}); err == nil || err.Error() != "Person not found" {
		t.Fatalf("expected Person not found, got %v", err)
	}
}

func TestReservationService_ListReservations_Pagination(t *testing.T) {
	t.Parallel()

	svc, repo := newReservationFixture()
	for i := 0; i < 25; i++ {
		repo.reservations = append(repo.reservations, persistence.Reservation{
			ID: int64(i + 1), PersonID: 1, SpaceID: 1,
			Date: "2030-03-15", StartTime: "08:00", EndTime: "09:00",
		})
	}
	repo.nextID = 26

	page, err := svc.ListReservations(context.Background(), PageParams{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Pagination.Total != 25 || page.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
	if len(page.Reservations) != 10 {
		t.Fatalf("expected 10 reservations, got %d", len(page.Reservations))
	}

	// Out-of-range parameters fall back to defaults.
	page, err = svc.ListReservations(context.Background(), PageParams{Page: 0, PageSize: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Pagination.Page != 1 || page.Pagination.PageSize != 100 {
		t.Fatalf("unexpected normalised pagination: %+v", page.Pagination)
	}

	// A page past the end is empty but keeps the metadata.
	page, err = svc.ListReservations(context.Background(), PageParams{Page: 9, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Reservations) != 0 || page.Pagination.Total != 25 {
		t.Fatalf("unexpected overflow page: %+v", page.Pagination)
	}
}

func TestReservationService_MyReservations(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()
	ctx := context.Background()

	if _, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}

	page, err := svc.MyReservations(ctx, "client@workspace.com", PageParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Reservations) != 1 || page.Pagination.Total != 1 {
		t.Fatalf("unexpected page: %+v", page.Pagination)
	}

	_, err = svc.MyReservations(ctx, "ghost@workspace.com", PageParams{})
	if err == nil || err.Error() != "User not found" {
		t.Fatalf("expected User not found, got %v", err)
	}
}

func TestReservationService_DeleteReservation(t *testing.T) {
	t.Parallel()

	svc, _ := newReservationFixture()
	ctx := context.Background()

	created, err := svc.CreateReservation(ctx, ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatalf("seed reservation failed: %v", err)
	}

	if err := svc.DeleteReservation(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteReservation(ctx, created.ID); err == nil || err.Error() != "Reservation not found" {
		t.Fatalf("expected Reservation not found, got %v", err)
	}
}

func TestReservationService_StoreFailure(t *testing.T) {
	t.Parallel()

	persons := map[int64]persistence.Person{1: {ID: 1, Email: "client@workspace.com", Role: "client"}}
	spaces := map[int64]persistence.Space{1: {ID: 1, Name: "Desk A", Location: "Floor 1", Capacity: 1}}
	repo := newFakeReservationRepo(persons)
	repo.err = errors.New("disk gone")
	svc := NewReservationService(repo, &personRepoStub{persons: persons}, &spaceRepoStub{spaces: spaces},
		fixedClock("2030-03-11 08:00"), nil)

	_, err := svc.CreateReservation(context.Background(), ReservationInput{
		PersonID: 1, SpaceID: 1, Date: "2030-03-15", StartTime: "10:00", EndTime: "11:00",
	})
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
