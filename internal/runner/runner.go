// Package runner drives one recommit run: fetch new events from every source,
// commit each one to the repository, record it in the ledger and push.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/fetcher"
	"github.com/footprint-tools/recommit/internal/log"
	"github.com/footprint-tools/recommit/internal/metrics"
	"github.com/footprint-tools/recommit/internal/source"
	"github.com/footprint-tools/recommit/internal/store"
)

var (
	// ErrAllSourcesFailed is returned when no source could be read at all.
	ErrAllSourcesFailed = errors.New("all sources failed")
	// ErrPushFailed is returned when commits were created but could not be pushed.
	ErrPushFailed = errors.New("push failed")
)

// Ledger is the storage the runner needs: the seen-record index plus run bookkeeping.
type Ledger interface {
	domain.Ledger
	BeginRun(id string, startedAt time.Time, dryRun bool) error
	FinishRun(run store.Run) error
}

// Options configures a Runner.
type Options struct {
	Ledger       Ledger
	Sources      []source.Client
	Materializer domain.Materializer

	PageSize    int
	Filters     source.Filters
	RecordLimit int // 0 processes every record; N stops after N committed records
	DryRun      bool
	Push        bool

	Metrics     *metrics.Metrics // nil disables metrics
	MetricsFile string           // written after the run when set
	Logger      domain.Logger
	Clock       func() time.Time
	NewRunID    func() string
}

// SourceResult is the outcome of fetching one source.
type SourceResult struct {
	Source  string
	Pages   int
	Fetched int
	Err     error
}

// Summary describes what a run did.
type Summary struct {
	RunID        string
	StartedAt    time.Time
	FinishedAt   time.Time
	DryRun       bool
	Sources      []SourceResult
	Fetched      int
	Materialized int
	Failed       int
	Duplicates   int
	Skipped      int // records left for the next run because of RecordLimit
	Pushed       bool
	PushErr      error
	Records      []domain.CommitRecord // committed records, or every fetched record in a dry run
}

// Runner executes runs.
type Runner struct {
	opts Options
	log  domain.Logger
	now  func() time.Time
}

// New creates a Runner.
func New(opts Options) *Runner {
	r := &Runner{opts: opts, log: opts.Logger, now: opts.Clock}
	if r.log == nil {
		r.log = log.Global()
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.opts.NewRunID == nil {
		r.opts.NewRunID = uuid.NewString
	}
	return r
}

// storeError marks failures of the ledger predicate so they abort the run
// instead of being treated as a source failure.
type storeError struct{ err error }

func (e *storeError) Error() string { return e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }

// Run performs one run.
//
// Source failures stop fetching from that source only. Ledger failures and
// context cancellation abort the run. A failed materialization skips the
// record, which is then fetched again next time.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	sum := Summary{
		RunID:     r.opts.NewRunID(),
		StartedAt: r.now(),
		DryRun:    r.opts.DryRun,
	}

	r.log.Info("runner: starting run %s (%d sources, dry run: %t)", sum.RunID, len(r.opts.Sources), r.opts.DryRun)

	if !r.opts.DryRun {
		if err := r.opts.Ledger.BeginRun(sum.RunID, sum.StartedAt, false); err != nil {
			return sum, fmt.Errorf("record run start: %w", err)
		}
	}

	records, err := r.fetchAll(ctx, &sum)
	if err != nil {
		return r.finish(sum, err)
	}

	r.log.Info("runner: all done fetching, %d new records", len(records))

	if r.opts.DryRun {
		sum.Records = records
		return r.finish(sum, nil)
	}

	if err := r.process(ctx, records, &sum); err != nil {
		return r.finish(sum, err)
	}

	if r.opts.Push && r.needsPush(ctx, sum) {
		r.log.Info("runner: pushing to origin (%d new commits)", sum.Materialized)
		if err := r.opts.Materializer.Push(ctx); err != nil {
			r.log.Error("runner: push failed: %v", err)
			sum.PushErr = err
			r.failed("all", metrics.StagePush)
			return r.finish(sum, fmt.Errorf("%w: %w", ErrPushFailed, err))
		}
		sum.Pushed = true
	}

	return r.finish(sum, nil)
}

// needsPush reports whether this run committed anything or an earlier run
// left commits that never reached origin.
func (r *Runner) needsPush(ctx context.Context, sum Summary) bool {
	if sum.Materialized > 0 {
		return true
	}
	pending, err := r.opts.Materializer.Unpushed(ctx)
	if err != nil {
		r.log.Warn("runner: could not count unpushed commits: %v", err)
		return false
	}
	if pending > 0 {
		r.log.Info("runner: %d commits from earlier runs are not on origin yet", pending)
	}
	return pending > 0
}

// fetchAll fetches every source in order and concatenates the new records.
func (r *Runner) fetchAll(ctx context.Context, sum *Summary) ([]domain.CommitRecord, error) {
	known := fetcher.KnownFunc(func(id string) (bool, error) {
		ok, err := r.opts.Ledger.Exists(id, "")
		if err != nil {
			return false, &storeError{err: err}
		}
		return ok, nil
	})

	var (
		all    []domain.CommitRecord
		failed int
	)

	for _, client := range r.opts.Sources {
		tag := client.Tag()
		f := fetcher.New(client,
			fetcher.WithPageSize(r.opts.PageSize),
			fetcher.WithFilters(r.opts.Filters),
			fetcher.WithIterationSeed(r.iterationSeed),
			fetcher.WithClock(r.now),
			fetcher.WithLogger(r.log),
		)

		records, err := f.Fetch(ctx, known)
		res := SourceResult{Source: tag, Pages: f.Pages(), Fetched: len(records), Err: err}
		sum.Sources = append(sum.Sources, res)
		sum.Fetched += len(records)
		all = append(all, records...)

		if m := r.opts.Metrics; m != nil {
			m.PagesRequested.WithLabelValues(tag).Add(float64(res.Pages))
			m.EventsNew.WithLabelValues(tag).Add(float64(len(records)))
		}

		r.log.Debug("runner: %d new records from %s in %d pages", len(records), tag, res.Pages)

		if err == nil {
			continue
		}

		var se *storeError
		if errors.As(err, &se) {
			return all, fmt.Errorf("check ledger: %w", se.err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return all, ctxErr
		}

		failed++
		r.failed(tag, metrics.StageFetch)
		r.log.Error("runner: fetching from %s stopped: %v", tag, err)
	}

	if len(r.opts.Sources) > 0 && failed == len(r.opts.Sources) && len(all) == 0 {
		return all, ErrAllSourcesFailed
	}

	return all, nil
}

// process commits and stores records in fetcher order.
func (r *Runner) process(ctx context.Context, records []domain.CommitRecord, sum *Summary) error {
	for i, rec := range records {
		if r.opts.RecordLimit > 0 && sum.Materialized >= r.opts.RecordLimit {
			sum.Skipped = len(records) - i
			r.log.Info("runner: record limit %d reached, %d records left for the next run", r.opts.RecordLimit, sum.Skipped)
			break
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		hash, err := r.opts.Materializer.Materialize(ctx, rec)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			sum.Failed++
			r.failed(rec.Source, metrics.StageMaterialize)
			r.log.Error("runner: failed to commit %s/%s: %v", rec.Source, rec.ID, err)
			continue
		}

		rec = rec.WithHash(hash)

		if err := r.opts.Ledger.Append(rec); err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				sum.Duplicates++
				r.log.Warn("runner: %s/%s is already in the ledger, skipping: %v", rec.Source, rec.ID, err)
				continue
			}
			r.failed(rec.Source, metrics.StageStore)
			return fmt.Errorf("store %s/%s: %w", rec.Source, rec.ID, err)
		}

		sum.Materialized++
		sum.Records = append(sum.Records, rec)
		if m := r.opts.Metrics; m != nil {
			m.RecordsMaterialized.WithLabelValues(rec.Source).Inc()
		}
		r.log.Debug("runner: processed %s as %s", rec.ID, rec.ShortHash())
	}

	r.log.Info("runner: finished processing records (%d/%d)", sum.Materialized, len(records))
	return nil
}

// iterationSeed continues numbering after the highest stored iteration.
func (r *Runner) iterationSeed(id string) (int, error) {
	n, ok, err := r.opts.Ledger.MaxIteration(id)
	if err != nil {
		return 0, &storeError{err: err}
	}
	if !ok {
		return 0, nil
	}
	return n + 1, nil
}

func (r *Runner) failed(tag, stage string) {
	if m := r.opts.Metrics; m != nil {
		m.RecordsFailed.WithLabelValues(tag, stage).Inc()
	}
}

// finish stores run bookkeeping and metrics, then returns sum and runErr.
func (r *Runner) finish(sum Summary, runErr error) (Summary, error) {
	sum.FinishedAt = r.now()

	if !r.opts.DryRun {
		run := store.Run{
			ID:           sum.RunID,
			FinishedAt:   sum.FinishedAt,
			Fetched:      sum.Fetched,
			Materialized: sum.Materialized,
			Failed:       sum.Failed,
			Pushed:       sum.Pushed,
		}
		if runErr != nil {
			run.Error = runErr.Error()
		}
		if err := r.opts.Ledger.FinishRun(run); err != nil {
			r.log.Warn("runner: could not record run end: %v", err)
		}
	}

	// Dry runs are not runs as far as metrics go.
	if m := r.opts.Metrics; m != nil && !r.opts.DryRun {
		m.ObserveRun(sum.StartedAt, sum.FinishedAt, runErr == nil)
		if r.opts.MetricsFile != "" {
			if err := m.WriteTextfile(r.opts.MetricsFile); err != nil {
				r.log.Warn("runner: could not write metrics to %s: %v", r.opts.MetricsFile, err)
			}
		}
	}

	if runErr != nil {
		r.log.Error("runner: run %s failed: %v", sum.RunID, runErr)
	} else {
		r.log.Info("runner: run %s done in %s", sum.RunID, sum.FinishedAt.Sub(sum.StartedAt).Round(time.Millisecond))
	}

	return sum, runErr
}
