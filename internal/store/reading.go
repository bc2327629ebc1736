package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/log"
)

// RecordFilter narrows List results. Zero values mean "no filter".
type RecordFilter struct {
	Source string
	Since  *time.Time
	Until  *time.Time
	Limit  int
}

// SourceStats summarizes the ledger rows of one source.
type SourceStats struct {
	Source         string
	Count          int64
	LastCommitTime time.Time
	LastSeenTime   time.Time
}

// List returns records matching the filter, newest event first.
func (s *Store) List(filter RecordFilter) ([]domain.CommitRecord, error) {
	if s.db == nil {
		return nil, domain.ErrNotOpen
	}

	base := `
		SELECT
			Id,
			Source,
			ProjectId,
			CommitHash,
			Iteration,
			CommitTimestamp,
			SeenTimestamp
		FROM commits
	`

	var (
		clauses []string
		args    []any
	)

	if filter.Source != "" {
		clauses = append(clauses, "Source = ?")
		args = append(args, filter.Source)
	}

	if filter.Since != nil {
		clauses = append(clauses, "CommitTimestamp >= ?")
		args = append(args, formatTime(*filter.Since))
	}

	if filter.Until != nil {
		clauses = append(clauses, "CommitTimestamp <= ?")
		args = append(args, formatTime(*filter.Until))
	}

	var query strings.Builder
	query.WriteString(base)

	if len(clauses) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(clauses, " AND "))
	}

	query.WriteString(" ORDER BY CommitTimestamp DESC, Iteration DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query.String(), args...)
	if err != nil {
		log.Error("store: list commits query failed: %v", err)
		return nil, classify(err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.CommitRecord

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			log.Error("store: scan commit row failed: %v", err)
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

// Stats returns per-source counts and latest timestamps.
func (s *Store) Stats() ([]SourceStats, error) {
	if s.db == nil {
		return nil, domain.ErrNotOpen
	}

	rows, err := s.db.Query(`
		SELECT Source, COUNT(*), MAX(CommitTimestamp), MAX(SeenTimestamp)
		FROM commits
		GROUP BY Source
		ORDER BY Source
	`)
	if err != nil {
		return nil, classify(err)
	}
	defer func() { _ = rows.Close() }()

	var out []SourceStats
	for rows.Next() {
		var (
			st           SourceStats
			commitTS, ts string
		)
		if err := rows.Scan(&st.Source, &st.Count, &commitTS, &ts); err != nil {
			return nil, err
		}
		if st.LastCommitTime, err = parseTime(commitTS); err != nil {
			return nil, fmt.Errorf("parse commit timestamp %q: %w", commitTS, err)
		}
		if st.LastSeenTime, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parse seen timestamp %q: %w", ts, err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// scanRecord scans a single row into a domain.CommitRecord.
func scanRecord(rows *sql.Rows) (domain.CommitRecord, error) {
	var (
		rec      domain.CommitRecord
		commitTS string
		seenTS   string
	)

	if err := rows.Scan(
		&rec.ID,
		&rec.Source,
		&rec.ProjectID,
		&rec.CommitHash,
		&rec.Iteration,
		&commitTS,
		&seenTS,
	); err != nil {
		return domain.CommitRecord{}, err
	}

	var err error
	if rec.Timestamp, err = parseTime(commitTS); err != nil {
		return domain.CommitRecord{}, fmt.Errorf("parse commit timestamp %q: %w", commitTS, err)
	}
	if rec.SeenTimestamp, err = parseTime(seenTS); err != nil {
		return domain.CommitRecord{}, fmt.Errorf("parse seen timestamp %q: %w", seenTS, err)
	}

	return rec, nil
}
