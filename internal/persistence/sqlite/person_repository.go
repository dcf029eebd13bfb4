package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/workspace-reservations/internal/persistence"
)

// CreatePerson inserts a new person and returns the stored row.
func (s *Store) CreatePerson(ctx context.Context, person persistence.Person) (persistence.Person, error) {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO persons (email, role, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		person.Email, person.Role, now, now,
	)
	if err != nil {
		return persistence.Person{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Person{}, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetPerson(ctx, id)
}

// UpdatePerson applies the field values of person to the stored row.
func (s *Store) UpdatePerson(ctx context.Context, person persistence.Person) (persistence.Person, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE persons SET email = ?, role = ?, updated_at = ? WHERE id = ?`,
		person.Email, person.Role, time.Now().UTC(), person.ID,
	)
	if err != nil {
		return persistence.Person{}, mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.Person{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.Person{}, persistence.ErrNotFound
	}

	return s.GetPerson(ctx, person.ID)
}

// GetPerson retrieves a person by id.
func (s *Store) GetPerson(ctx context.Context, id int64) (persistence.Person, error) {
	var person persistence.Person
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, role, created_at, updated_at FROM persons WHERE id = ?`, id,
	).Scan(&person.ID, &person.Email, &person.Role, &person.CreatedAt, &person.UpdatedAt)
	if err != nil {
		return persistence.Person{}, mapError(err)
	}
	return person, nil
}

// GetPersonByEmail retrieves a person by exact email. Callers are expected
// to lowercase-normalise the address before lookup.
func (s *Store) GetPersonByEmail(ctx context.Context, email string) (persistence.Person, error) {
	var person persistence.Person
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, role, created_at, updated_at FROM persons WHERE email = ?`, email,
	).Scan(&person.ID, &person.Email, &person.Role, &person.CreatedAt, &person.UpdatedAt)
	if err != nil {
		return persistence.Person{}, mapError(err)
	}
	return person, nil
}

// ListPersons returns all persons ordered by id ascending.
func (s *Store) ListPersons(ctx context.Context) ([]persistence.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, role, created_at, updated_at FROM persons ORDER BY id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var persons []persistence.Person
	for rows.Next() {
		var person persistence.Person
		if err := rows.Scan(&person.ID, &person.Email, &person.Role, &person.CreatedAt, &person.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		persons = append(persons, person)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return persons, nil
}

// DeletePerson removes a person. Owned reservations cascade at the schema
// level.
func (s *Store) DeletePerson(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, id)
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
