package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/log"
	"github.com/footprint-tools/recommit/internal/store/migrations"
)

// timeLayout keeps timestamps fixed-width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Store is the SQLite-backed commit ledger.
// It implements the domain.Ledger interface.
type Store struct {
	db   *sql.DB
	path string
}

// New creates a closed Store bound to the given database path.
// Call Open before using it.
func New(path string) *Store {
	return &Store{path: path}
}

// Open creates a Store for path and opens it.
func Open(path string) (*Store, error) {
	s := New(path)
	if err := s.Open(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithDB creates an open Store from an existing database connection.
// Useful for testing with pre-configured databases.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens the database, pings it and runs any pending migrations.
// Opening an already open store is a no-op.
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}

	log.Debug("store: opening database at %s", s.path)

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("%w: open database: %w", domain.ErrStorageUnavailable, err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: ping database: %w", domain.ErrStorageUnavailable, err)
	}

	// One exclusively owned handle for the whole run.
	db.SetMaxOpenConns(1)

	setDBPermissions(s.path)

	if err = migrations.Run(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: run migrations: %w", domain.ErrStorageUnavailable, err)
	}

	s.db = db
	log.Debug("store: database ready")
	return nil
}

// Close closes the database connection.
// Closing a store that is already closed is reported and otherwise ignored.
func (s *Store) Close() error {
	if s.db == nil {
		log.Warn("store: close called while database connection is already closed")
		return nil
	}

	log.Debug("store: closing database connection")
	err := s.db.Close()
	s.db = nil
	return err
}

// SchemaVersion returns the applied ledger schema version.
func (s *Store) SchemaVersion() (int, error) {
	if s.db == nil {
		return 0, domain.ErrNotOpen
	}
	return migrations.Version(s.db)
}

// IsOpen reports whether the store holds an open connection.
func (s *Store) IsOpen() bool {
	return s.db != nil
}

// Path returns the database path the store was created with.
func (s *Store) Path() string {
	return s.path
}

// DB returns the underlying database connection.
// Use sparingly - prefer using Store methods.
func (s *Store) DB() *sql.DB {
	return s.db
}

// setDBPermissions sets restrictive file permissions on the database and its WAL/SHM files.
func setDBPermissions(path string) {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Exists reports whether a record with the given id has been persisted.
// An empty source matches rows from any source.
func (s *Store) Exists(id, source string) (bool, error) {
	if s.db == nil {
		return false, domain.ErrNotOpen
	}
	if id == "" {
		return false, domain.ErrEmptyID
	}

	query := `SELECT 1 FROM commits WHERE Id = ? LIMIT 1`
	args := []any{id}
	if source != "" {
		query = `SELECT 1 FROM commits WHERE Id = ? AND Source = ? LIMIT 1`
		args = append(args, source)
	}

	var one int
	err := s.db.QueryRow(query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, classify(fmt.Errorf("check exists: %w", err))
	}
	return true, nil
}

// Append persists a record. It fails with domain.ErrDuplicateKey if the id
// already exists; rows are never overwritten.
func (s *Store) Append(rec domain.CommitRecord) error {
	if s.db == nil {
		return domain.ErrNotOpen
	}
	if rec.ID == "" {
		return domain.ErrEmptyID
	}

	_, err := s.db.Exec(
		`INSERT INTO commits
		 (Id, Source, ProjectId, CommitHash, Iteration, CommitTimestamp, SeenTimestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Source,
		rec.ProjectID,
		rec.CommitHash,
		rec.Iteration,
		formatTime(rec.Timestamp),
		formatTime(rec.SeenTimestamp),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: id=%s source=%s", domain.ErrDuplicateKey, rec.ID, rec.Source)
		}
		log.Error("store: insert commit failed: %v (id=%s, source=%s)", err, rec.ID, rec.Source)
		return classify(fmt.Errorf("insert commit: %w", err))
	}
	return nil
}

// MaxIteration returns the highest iteration recorded for id.
// The boolean is false when no row exists.
func (s *Store) MaxIteration(id string) (int, bool, error) {
	if s.db == nil {
		return 0, false, domain.ErrNotOpen
	}

	var maxIter sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(Iteration) FROM commits WHERE Id = ?`, id).Scan(&maxIter)
	if err != nil {
		return 0, false, classify(fmt.Errorf("max iteration: %w", err))
	}
	if !maxIter.Valid {
		return 0, false, nil
	}
	return int(maxIter.Int64), true, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// classify marks errors caused by an unreachable medium as ErrStorageUnavailable.
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.Code {
	case sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrFull, sqlite3.ErrNotADB, sqlite3.ErrCorrupt:
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Verify Store implements domain.Ledger
var _ domain.Ledger = (*Store)(nil)
