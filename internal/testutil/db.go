package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/store"
	"github.com/footprint-tools/recommit/internal/store/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")

	// Every new connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	err = migrations.Run(db)
	require.NoError(t, err, "failed to run migrations")

	return db
}

// NewTestStore returns an open store backed by NewTestDB.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewWithDB(NewTestDB(t))
}

// Record builds a commit record with sensible defaults for tests.
func Record(id string, ts time.Time) domain.CommitRecord {
	return domain.CommitRecord{
		ID:            id,
		Source:        "gitlab",
		ProjectID:     1,
		Timestamp:     ts,
		SeenTimestamp: ts.Add(time.Minute),
		CommitHash:    "0123456789abcdef0123456789abcdef01234567",
	}
}

// SeedRecords appends records to the store, failing the test on any error.
func SeedRecords(t *testing.T, s *store.Store, records []domain.CommitRecord) {
	t.Helper()

	for _, rec := range records {
		err := s.Append(rec)
		require.NoError(t, err, "failed to seed record: %+v", rec)
	}
}
