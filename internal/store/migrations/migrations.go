// Package migrations keeps the ledger schema current.
//
// Numbered files under sql/ ("NN_name.sql") are applied in version order,
// each in its own transaction, and recorded in schema_version. A ledger
// created before versioning existed (a bare commits table) is adopted as is:
// the first step only creates what is missing.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/footprint-tools/recommit/internal/log"
)

//go:embed sql/*.sql
var files embed.FS

// Step is one numbered schema change.
type Step struct {
	Version int
	Name    string
	SQL     string
}

// ID returns the file stem of the step, e.g. "02_runs".
func (s Step) ID() string {
	return fmt.Sprintf("%02d_%s", s.Version, s.Name)
}

const createVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

// Steps returns the embedded steps sorted by version.
func Steps() ([]Step, error) {
	names, err := fs.Glob(files, "sql/*.sql")
	if err != nil {
		return nil, fmt.Errorf("ledger migrations: %w", err)
	}

	steps := make([]Step, 0, len(names))
	byVersion := make(map[int]string, len(names))

	for _, name := range names {
		base := path.Base(name)
		version, stepName, err := parseName(base)
		if err != nil {
			return nil, fmt.Errorf("ledger migration %s: %w", base, err)
		}
		if other, dup := byVersion[version]; dup {
			return nil, fmt.Errorf("ledger migrations %s and %s share version %d", other, base, version)
		}
		byVersion[version] = base

		body, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("ledger migration %s: %w", base, err)
		}
		steps = append(steps, Step{Version: version, Name: stepName, SQL: string(body)})
	}

	sort.Slice(steps, func(i, j int) bool { return steps[i].Version < steps[j].Version })
	return steps, nil
}

func parseName(file string) (int, string, error) {
	num, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || name == "" {
		return 0, "", errors.New("expected NN_name.sql")
	}
	version, err := strconv.Atoi(num)
	if err != nil || version < 1 {
		return 0, "", fmt.Errorf("bad version %q", num)
	}
	return version, name, nil
}

// Version returns the highest applied version, or 0 for an unversioned
// database. It does not modify the database.
func Version(db *sql.DB) (int, error) {
	ok, err := hasTable(db, "schema_version")
	if err != nil || !ok {
		return 0, err
	}

	var version sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read ledger schema version: %w", err)
	}
	return int(version.Int64), nil
}

// Pending returns the steps not applied yet.
func Pending(db *sql.DB) ([]Step, error) {
	steps, err := Steps()
	if err != nil {
		return nil, err
	}
	current, err := Version(db)
	if err != nil {
		return nil, err
	}

	var out []Step
	for _, s := range steps {
		if s.Version > current {
			out = append(out, s)
		}
	}
	return out, nil
}

// Run applies every pending step.
func Run(db *sql.DB) error {
	pending, err := Pending(db)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	if _, err := db.Exec(createVersionTable); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	if pending[0].Version == 1 {
		if legacy, err := hasTable(db, "commits"); err == nil && legacy {
			log.Info("store: adopting existing commits table into the versioned ledger")
		}
	}

	for _, s := range pending {
		log.Debug("store: applying ledger migration %s", s.ID())
		if err := apply(db, s); err != nil {
			return fmt.Errorf("ledger migration %s: %w", s.ID(), err)
		}
	}
	return nil
}

func apply(db *sql.DB, s Step) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(s.SQL); err != nil {
		return err
	}
	if _, err = tx.Exec(`INSERT INTO schema_version (version, name) VALUES (?, ?)`, s.Version, s.Name); err != nil {
		return fmt.Errorf("record version: %w", err)
	}
	return tx.Commit()
}

func hasTable(db *sql.DB, name string) (bool, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect ledger schema: %w", err)
	}
	return n > 0, nil
}
