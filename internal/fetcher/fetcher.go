// Package fetcher walks an event source page by page and keeps only the
// events that are not yet known.
//
// The walk relies on the provider returning events newest first: a page with
// no new event means everything older was already seen in an earlier run.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/log"
	"github.com/footprint-tools/recommit/internal/source"
)

// DefaultPageSize is the number of events requested per page.
const DefaultPageSize = 50

// KnownChecker decides whether an event id was already persisted.
type KnownChecker interface {
	IsKnown(id string) (bool, error)
}

// KnownFunc adapts a plain function to KnownChecker.
type KnownFunc func(id string) (bool, error)

// IsKnown implements KnownChecker.
func (f KnownFunc) IsKnown(id string) (bool, error) {
	return f(id)
}

// IterationSeed returns the first iteration to use for an id.
type IterationSeed func(id string) (int, error)

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithPageSize sets the page size. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

// WithIterationSeed sets where per-id iteration counters start.
func WithIterationSeed(seed IterationSeed) Option {
	return func(f *Fetcher) {
		f.seed = seed
	}
}

// WithClock replaces time.Now for SeenTimestamp.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		if now != nil {
			f.now = now
		}
	}
}

// WithFilters passes provider filters with every page request.
func WithFilters(filters source.Filters) Option {
	return func(f *Fetcher) {
		f.filters = filters
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger domain.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Fetcher turns a paginated event source into new commit records.
// It never writes anywhere; deciding what is known is up to the caller.
type Fetcher struct {
	client   source.Client
	pageSize int
	filters  source.Filters
	seed     IterationSeed
	now      func() time.Time
	logger   domain.Logger
	pages    int
}

// New creates a Fetcher for client.
func New(client source.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   client,
		pageSize: DefaultPageSize,
		now:      time.Now,
		logger:   log.Global(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Pages returns the number of page requests made by the last Fetch.
func (f *Fetcher) Pages() int {
	return f.pages
}

// Source returns the tag of the underlying client.
func (f *Fetcher) Source() string {
	return f.client.Tag()
}

// Fetch collects every event the checker does not know, in provider order.
//
// It starts at page 1 and requests the next page only while the current one
// produced at least one new record. An empty page always ends the walk.
// On a page or checker error the records gathered so far are returned with
// the error.
func (f *Fetcher) Fetch(ctx context.Context, known KnownChecker) ([]domain.CommitRecord, error) {
	tag := f.client.Tag()
	f.pages = 0

	var (
		records    []domain.CommitRecord
		iterations = make(map[string]int)
	)

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		f.pages++
		events, err := f.client.FetchPage(ctx, page, f.pageSize, f.filters)
		if err != nil {
			return records, fmt.Errorf("fetch %s page %d: %w", tag, page, err)
		}

		if len(events) == 0 {
			f.logger.Debug("fetcher: %s page %d is empty, stopping", tag, page)
			return records, nil
		}

		fresh := 0
		for _, ev := range events {
			isKnown, err := known.IsKnown(ev.ID)
			if err != nil {
				return records, fmt.Errorf("check %s event %s: %w", tag, ev.ID, err)
			}
			if isKnown {
				continue
			}

			iteration, err := f.nextIteration(iterations, ev.ID)
			if err != nil {
				return records, fmt.Errorf("seed iteration for %s event %s: %w", tag, ev.ID, err)
			}

			records = append(records, domain.CommitRecord{
				ID:            ev.ID,
				Source:        tag,
				ProjectID:     ev.ProjectID,
				Iteration:     iteration,
				Timestamp:     ev.CreatedAt.UTC(),
				SeenTimestamp: f.now().UTC(),
			})
			fresh++
		}

		f.logger.Debug("fetcher: %s page %d: %d events, %d new", tag, page, len(events), fresh)

		if fresh == 0 {
			return records, nil
		}
	}
}

// nextIteration returns the iteration for the next record with id within
// this fetch.
func (f *Fetcher) nextIteration(iterations map[string]int, id string) (int, error) {
	next, seen := iterations[id]
	if !seen {
		if f.seed != nil {
			start, err := f.seed(id)
			if err != nil {
				return 0, err
			}
			next = start
		}
	}
	iterations[id] = next + 1
	return next, nil
}
