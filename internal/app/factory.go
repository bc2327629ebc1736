// Package app wires settings into the collaborators a run needs.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/footprint-tools/recommit/internal/config"
	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/git"
	"github.com/footprint-tools/recommit/internal/log"
	"github.com/footprint-tools/recommit/internal/metrics"
	"github.com/footprint-tools/recommit/internal/paths"
	"github.com/footprint-tools/recommit/internal/runner"
	"github.com/footprint-tools/recommit/internal/source"
	"github.com/footprint-tools/recommit/internal/source/gitlab"
	"github.com/footprint-tools/recommit/internal/store"
	"github.com/footprint-tools/recommit/internal/usage"
)

// Options configures the application factory.
type Options struct {
	// Verbose echoes INFO and above to Stderr.
	Verbose bool
	Stderr  io.Writer

	// Sources restricts the run to these source tags. Empty means all.
	Sources []string

	// SkipRepository builds an App without a materializer (used by fetch).
	SkipRepository bool
}

// App holds the collaborators of one process.
type App struct {
	Settings     config.Settings
	Logger       domain.Logger
	Store        *store.Store
	Sources      []source.Client
	Materializer domain.Materializer
	Metrics      *metrics.Metrics
}

// sourceFactories builds each known source from settings.
var sourceFactories = map[string]func(config.Settings) source.Client{
	gitlab.Tag: func(s config.Settings) source.Client {
		return gitlab.NewClient(gitlab.Config{
			BaseURL:   s.GitLabURL,
			Username:  s.GitLabUsername,
			Token:     s.GitLabToken,
			RateLimit: s.GitLabRateLimit,
		}, nil)
	},
}

// SourceTags returns the tags of every known source, sorted.
func SourceTags() []string {
	tags := make([]string, 0, len(sourceFactories))
	for tag := range sourceFactories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// New validates settings and builds an App. The returned App owns an open store.
func New(settings config.Settings, opts Options) (*App, error) {
	var exempt []string
	if opts.SkipRepository {
		exempt = append(exempt, "repository_path")
	}
	if err := settings.RequireComplete(exempt...); err != nil {
		return nil, err
	}

	logger := SetupLogging(settings, opts.Verbose, opts.Stderr)

	sources, err := buildSources(settings, opts.Sources)
	if err != nil {
		return nil, err
	}

	a := &App{
		Settings: settings,
		Logger:   logger,
		Sources:  sources,
		Metrics:  metrics.New(),
	}

	if !opts.SkipRepository {
		m, err := NewMaterializer(settings)
		if err != nil {
			return nil, err
		}
		a.Materializer = m
	}

	st, err := OpenStore(settings)
	if err != nil {
		return nil, err
	}
	a.Store = st

	return a, nil
}

// SetupLogging installs the global file logger according to settings.
// A log file that cannot be opened disables logging rather than failing.
func SetupLogging(settings config.Settings, verbose bool, stderr io.Writer) domain.Logger {
	if stderr == nil {
		stderr = os.Stderr
	}

	var l *log.Logger
	if settings.EnableLog {
		fileLogger, err := log.New(paths.LogFilePath(), settings.LogLevel, log.WithRotation(log.Rotation{
			MaxSizeMB:  settings.LogMaxSizeMB,
			MaxBackups: settings.LogBackups,
		}))
		if err == nil {
			l = fileLogger
		}
	}

	if verbose {
		if l == nil {
			l = log.NewConsole(stderr, log.LevelInfo)
		} else {
			l.EchoTo(stderr, log.LevelInfo)
		}
	}

	if l == nil {
		return log.NopLogger{}
	}

	log.SetDefault(l)
	return log.Global()
}

// OpenStore opens the ledger at settings.DBPath, creating its directory.
func OpenStore(settings config.Settings) (*store.Store, error) {
	dbPath := settings.DBPath
	if dbPath == "" {
		dbPath = paths.DBPath()
	}

	if dir := filepath.Dir(dbPath); dir != "" {
		_ = os.MkdirAll(dir, 0700)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, usage.StorageUnavailable(dbPath, err)
	}
	return st, nil
}

// NewMaterializer checks the repository and builds a git materializer for it.
func NewMaterializer(settings config.Settings) (*git.Materializer, error) {
	if !git.IsAvailable() {
		return nil, usage.GitNotInstalled()
	}

	root, err := git.RepoRoot(settings.RepositoryPath)
	if err != nil {
		return nil, usage.InvalidRepo(settings.RepositoryPath, err)
	}

	return git.NewMaterializer(root, settings.Location, settings.MarkerFile), nil
}

func buildSources(settings config.Settings, only []string) ([]source.Client, error) {
	tags := only
	if len(tags) == 0 {
		tags = SourceTags()
	}

	sources := make([]source.Client, 0, len(tags))
	for _, tag := range tags {
		factory, ok := sourceFactories[tag]
		if !ok {
			return nil, usage.InvalidFlagValue("--source", tag, fmt.Sprintf("one of %v", SourceTags()))
		}
		sources = append(sources, factory(settings))
	}
	return sources, nil
}

// RunOptions are the per-invocation knobs of a run.
type RunOptions struct {
	DryRun      bool
	NoPush      bool
	RecordLimit int // negative keeps the configured limit
}

// Runner builds a runner over the App's collaborators.
func (a *App) Runner(ro RunOptions) *runner.Runner {
	limit := a.Settings.RecordLimit
	if ro.RecordLimit >= 0 {
		limit = ro.RecordLimit
	}

	return runner.New(runner.Options{
		Ledger:       a.Store,
		Sources:      a.Sources,
		Materializer: a.Materializer,
		PageSize:     a.Settings.PageSize,
		RecordLimit:  limit,
		DryRun:       ro.DryRun,
		Push:         a.Settings.Push && !ro.NoPush,
		Metrics:      a.Metrics,
		MetricsFile:  a.Settings.MetricsFile,
		Logger:       a.Logger,
	})
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var err error
	if a.Store != nil {
		err = a.Store.Close()
	}
	_ = log.Close()
	return err
}
