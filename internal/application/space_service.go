package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/example/workspace-reservations/internal/persistence"
)

// SpaceService orchestrates validation and persistence for space
// operations.
type SpaceService struct {
	spaces persistence.SpaceRepository
	logger *slog.Logger
}

// NewSpaceService wires dependencies for space operations.
func NewSpaceService(spaces persistence.SpaceRepository, logger *slog.Logger) *SpaceService {
	return &SpaceService{spaces: spaces, logger: defaultLogger(logger)}
}

// CreateSpace validates and trims the input before persisting.
func (s *SpaceService) CreateSpace(ctx context.Context, input SpaceInput) (persistence.Space, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return persistence.Space{}, invalidFormat("Space name is required and cannot be empty")
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return persistence.Space{}, invalidFormat("Space location is required and cannot be empty")
	}
	if input.Capacity < 1 {
		return persistence.Space{}, invalidFormat("Capacity must be a positive integer")
	}

	space, err := s.spaces.CreateSpace(ctx, persistence.Space{
		Name:        name,
		Location:    location,
		Capacity:    input.Capacity,
		Description: trimDescription(input.Description),
	})
	if err != nil {
		return persistence.Space{}, s.mapError(ctx, "create_space", err)
	}

	serviceLogger(ctx, s.logger, "spaces", "create_space", "space_id", space.ID).InfoContext(ctx, "space created")
	return space, nil
}

// UpdateSpace applies the present patch fields onto the stored row.
func (s *SpaceService) UpdateSpace(ctx context.Context, id int64, patch SpacePatch) (persistence.Space, error) {
	existing, err := s.spaces.GetSpace(ctx, id)
	if err != nil {
		return persistence.Space{}, s.mapError(ctx, "update_space", err)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return persistence.Space{}, invalidFormat("Space name is required and cannot be empty")
		}
		existing.Name = name
	}
	if patch.Location != nil {
		location := strings.TrimSpace(*patch.Location)
		if location == "" {
			return persistence.Space{}, invalidFormat("Space location is required and cannot be empty")
		}
		existing.Location = location
	}
	if patch.Capacity != nil {
		if *patch.Capacity < 1 {
			return persistence.Space{}, invalidFormat("Capacity must be a positive integer")
		}
		existing.Capacity = *patch.Capacity
	}
	if patch.Description != nil {
		existing.Description = trimDescription(patch.Description)
	}

	updated, err := s.spaces.UpdateSpace(ctx, existing)
	if err != nil {
		return persistence.Space{}, s.mapError(ctx, "update_space", err)
	}
	return updated, nil
}

// GetSpace retrieves a space by id.
func (s *SpaceService) GetSpace(ctx context.Context, id int64) (persistence.Space, error) {
	space, err := s.spaces.GetSpace(ctx, id)
	if err != nil {
		return persistence.Space{}, s.mapError(ctx, "get_space", err)
	}
	return space, nil
}

// ListSpaces returns all spaces.
func (s *SpaceService) ListSpaces(ctx context.Context) ([]persistence.Space, error) {
	spaces, err := s.spaces.ListSpaces(ctx)
	if err != nil {
		return nil, s.mapError(ctx, "list_spaces", err)
	}
	return spaces, nil
}

// DeleteSpace removes a space; its reservations cascade.
func (s *SpaceService) DeleteSpace(ctx context.Context, id int64) error {
	if err := s.spaces.DeleteSpace(ctx, id); err != nil {
		return s.mapError(ctx, "delete_space", err)
	}
	serviceLogger(ctx, s.logger, "spaces", "delete_space", "space_id", id).InfoContext(ctx, "space deleted")
	return nil
}

func (s *SpaceService) mapError(ctx context.Context, op string, err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return &NotFoundError{Kind: KindSpace}
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		return invalidFormat("Capacity must be a positive integer")
	}

	serviceLogger(ctx, s.logger, "spaces", op).ErrorContext(ctx, "storage failure", "error", err)
	return &StoreError{Op: op, Err: err}
}

// trimDescription normalises an optional description: whitespace is
// trimmed and an empty result becomes absent.
func trimDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
