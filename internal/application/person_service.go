package application

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/example/workspace-reservations/internal/persistence"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// PersonService orchestrates validation and persistence for person
// operations.
type PersonService struct {
	persons persistence.PersonRepository
	logger  *slog.Logger
}

// NewPersonService wires dependencies for person operations.
func NewPersonService(persons persistence.PersonRepository, logger *slog.Logger) *PersonService {
	return &PersonService{persons: persons, logger: defaultLogger(logger)}
}

// CreatePerson validates and normalises the input before persisting. The
// email is lowercased; the role defaults to client.
func (s *PersonService) CreatePerson(ctx context.Context, input PersonInput) (persistence.Person, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return persistence.Person{}, invalidFormat("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return persistence.Person{}, invalidFormat("Invalid email format")
	}

	role := input.Role
	if role == "" {
		role = RoleClient
	}
	if !validRole(role) {
		return persistence.Person{}, invalidFormat(`Role must be either "admin" or "client"`)
	}

	person, err := s.persons.CreatePerson(ctx, persistence.Person{
		Email: strings.ToLower(email),
		Role:  role,
	})
	if err != nil {
		return persistence.Person{}, s.mapError(ctx, "create_person", err)
	}

	serviceLogger(ctx, s.logger, "persons", "create_person", "person_id", person.ID).InfoContext(ctx, "person created")
	return person, nil
}

// UpdatePerson applies the present patch fields onto the stored row.
func (s *PersonService) UpdatePerson(ctx context.Context, id int64, patch PersonPatch) (persistence.Person, error) {
	existing, err := s.persons.GetPerson(ctx, id)
	if err != nil {
		return persistence.Person{}, s.mapError(ctx, "update_person", err)
	}

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if !emailPattern.MatchString(email) {
			return persistence.Person{}, invalidFormat("Invalid email format")
		}
		existing.Email = strings.ToLower(email)
	}
	if patch.Role != nil {
		if !validRole(*patch.Role) {
			return persistence.Person{}, invalidFormat(`Role must be either "admin" or "client"`)
		}
		existing.Role = *patch.Role
	}

	updated, err := s.persons.UpdatePerson(ctx, existing)
	if err != nil {
		return persistence.Person{}, s.mapError(ctx, "update_person", err)
	}
	return updated, nil
}

// GetPerson retrieves a person by id.
func (s *PersonService) GetPerson(ctx context.Context, id int64) (persistence.Person, error) {
	person, err := s.persons.GetPerson(ctx, id)
	if err != nil {
		return persistence.Person{}, s.mapError(ctx, "get_person", err)
	}
	return person, nil
}

// GetPersonByEmail retrieves a person by normalised email.
func (s *PersonService) GetPersonByEmail(ctx context.Context, email string) (persistence.Person, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return persistence.Person{}, invalidFormat("Invalid email format")
	}

	person, err := s.persons.GetPersonByEmail(ctx, email)
	if err != nil {
		return persistence.Person{}, s.mapError(ctx, "get_person_by_email", err)
	}
	return person, nil
}

// ListPersons returns all persons.
func (s *PersonService) ListPersons(ctx context.Context) ([]persistence.Person, error) {
	persons, err := s.persons.ListPersons(ctx)
	if err != nil {
		return nil, s.mapError(ctx, "list_persons", err)
	}
	return persons, nil
}

// DeletePerson removes a person; owned reservations cascade.
func (s *PersonService) DeletePerson(ctx context.Context, id int64) error {
	if err := s.persons.DeletePerson(ctx, id); err != nil {
		return s.mapError(ctx, "delete_person", err)
	}
	serviceLogger(ctx, s.logger, "persons", "delete_person", "person_id", id).InfoContext(ctx, "person deleted")
	return nil
}

func (s *PersonService) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return &NotFoundError{Kind: KindPerson}
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrEmailTaken
	}

	serviceLogger(ctx, s.logger, "persons", op).ErrorContext(ctx, "storage failure", "error", err)
	return &StoreError{Op: op, Err: err}
}

func validRole(role string) bool {
	return role == RoleClient || role == RoleAdmin
}
