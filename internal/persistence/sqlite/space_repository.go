package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/workspace-reservations/internal/persistence"
)

// CreateSpace inserts a new space and returns the stored row.
func (s *Store) CreateSpace(ctx context.Context, space persistence.Space) (persistence.Space, error) {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO spaces (name, location, capacity, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		space.Name, space.Location, space.Capacity, nullString(space.Description), now, now,
	)
	if err != nil {
		return persistence.Space{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Space{}, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetSpace(ctx, id)
}

// UpdateSpace applies the field values of space to the stored row.
func (s *Store) UpdateSpace(ctx context.Context, space persistence.Space) (persistence.Space, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE spaces SET name = ?, location = ?, capacity = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		space.Name, space.Location, space.Capacity, nullString(space.Description), time.Now().UTC(), space.ID,
	)
	if err != nil {
		return persistence.Space{}, mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.Space{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.Space{}, persistence.ErrNotFound
	}

	return s.GetSpace(ctx, space.ID)
}

// GetSpace retrieves a space by id.
func (s *Store) GetSpace(ctx context.Context, id int64) (persistence.Space, error) {
	var space persistence.Space
	var description sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, location, capacity, description, created_at, updated_at
		 FROM spaces WHERE id = ?`, id,
	).Scan(&space.ID, &space.Name, &space.Location, &space.Capacity, &description, &space.CreatedAt, &space.UpdatedAt)
	if err != nil {
		return persistence.Space{}, mapError(err)
	}
	if description.Valid {
		space.Description = &description.String
	}
	return space, nil
}

// ListSpaces returns all spaces ordered by id ascending.
func (s *Store) ListSpaces(ctx context.Context) ([]persistence.Space, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, location, capacity, description, created_at, updated_at
		 FROM spaces ORDER BY id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var spaces []persistence.Space
	for rows.Next() {
		var space persistence.Space
		var description sql.NullString
		if err := rows.Scan(&space.ID, &space.Name, &space.Location, &space.Capacity, &description, &space.CreatedAt, &space.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		if description.Valid {
			space.Description = &description.String
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return spaces, nil
}

// DeleteSpace removes a space. Its reservations cascade at the schema level.
func (s *Store) DeleteSpace(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = ?`, id)
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

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
