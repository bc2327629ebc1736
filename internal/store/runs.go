package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/footprint-tools/recommit/internal/domain"
)

// Run is the bookkeeping row of one recommit run.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time // zero while the run is in progress or if it crashed
	DryRun       bool
	Fetched      int
	Materialized int
	Failed       int
	Pushed       bool
	Error        string
}

// BeginRun records the start of a run.
func (s *Store) BeginRun(id string, startedAt time.Time, dryRun bool) error {
	if s.db == nil {
		return domain.ErrNotOpen
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, started_at, dry_run) VALUES (?, ?, ?)`,
		id, formatTime(startedAt), boolToInt(dryRun),
	)
	if err != nil {
		return classify(fmt.Errorf("begin run: %w", err))
	}
	return nil
}

// FinishRun stores the final counters of a run started with BeginRun.
func (s *Store) FinishRun(run Run) error {
	if s.db == nil {
		return domain.ErrNotOpen
	}
	_, err := s.db.Exec(
		`UPDATE runs
		 SET finished_at = ?, fetched = ?, materialized = ?, failed = ?, pushed = ?, error = ?
		 WHERE id = ?`,
		formatTime(run.FinishedAt), run.Fetched, run.Materialized, run.Failed,
		boolToInt(run.Pushed), run.Error, run.ID,
	)
	if err != nil {
		return classify(fmt.Errorf("finish run: %w", err))
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if s.db == nil {
		return nil, domain.ErrNotOpen
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, dry_run, fetched, materialized, failed, pushed, error
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, classify(err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var (
			r        Run
			started  string
			finished sql.NullString
			dryRun   int
			pushed   int
		)
		if err := rows.Scan(&r.ID, &started, &finished, &dryRun, &r.Fetched, &r.Materialized, &r.Failed, &pushed, &r.Error); err != nil {
			return nil, err
		}
		if r.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if finished.Valid {
			if r.FinishedAt, err = parseTime(finished.String); err != nil {
				return nil, err
			}
		}
		r.DryRun = dryRun == 1
		r.Pushed = pushed == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
