package mirror

import (
	"strconv"

	"github.com/footprint-tools/recommit/internal/app"
	"github.com/footprint-tools/recommit/internal/dispatchers"
	"github.com/footprint-tools/recommit/internal/usage"
)

func Run(args []string, flags *dispatchers.ParsedFlags) error {
	return run(args, flags, DefaultDeps())
}

func run(_ []string, flags *dispatchers.ParsedFlags, deps Deps) error {
	limit, err := limitFlag(flags)
	if err != nil {
		return err
	}

	settings, err := deps.LoadSettings()
	if err != nil {
		return err
	}

	dryRun := flags.Has("--dry-run")

	a, err := deps.NewApp(settings, app.Options{
		Verbose:        flags.Has("--verbose"),
		Stderr:         deps.Stderr,
		SkipRepository: dryRun,
	})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	r := a.Runner(app.RunOptions{
		DryRun:      dryRun,
		NoPush:      flags.Has("--no-push"),
		RecordLimit: limit,
	})

	sum, runErr := r.Run(deps.Context())
	printSummary(sum, a.Settings.Location, deps)
	return runErr
}

// limitFlag returns the --limit value, or -1 when the flag is absent.
func limitFlag(flags *dispatchers.ParsedFlags) (int, error) {
	raw, ok := flags.Lookup("--limit")
	if !ok {
		return -1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, usage.InvalidFlagValue("--limit", raw, "a whole number, 0 for no limit")
	}
	return n, nil
}
