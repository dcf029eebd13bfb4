package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/workspace-reservations/internal/persistence"
	"github.com/example/workspace-reservations/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Persons      persistence.PersonRepository
	Spaces       persistence.SpaceRepository
	Reservations persistence.ReservationRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a harness over a temporary database file that
// is migrated automatically. A cleanup callback is registered with the
// provided testing.TB; callers may also invoke Close themselves.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "reservations.db")

	store, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		tb.Fatalf("failed to migrate store: %v", err)
	}

	harness := &SQLiteHarness{
		Persons:      store,
		Spaces:       store,
		Reservations: store,
		cleanup: func() {
			_ = store.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
