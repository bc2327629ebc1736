package mirror

import (
	"github.com/footprint-tools/recommit/internal/app"
	"github.com/footprint-tools/recommit/internal/dispatchers"
)

// Fetch lists the records a run would commit without writing anything.
func Fetch(args []string, flags *dispatchers.ParsedFlags) error {
	return fetch(args, flags, DefaultDeps())
}

func fetch(_ []string, flags *dispatchers.ParsedFlags, deps Deps) error {
	settings, err := deps.LoadSettings()
	if err != nil {
		return err
	}

	var sources []string
	if src := flags.String("--source", ""); src != "" {
		sources = []string{src}
	}

	a, err := deps.NewApp(settings, app.Options{
		Verbose:        flags.Has("--verbose"),
		Stderr:         deps.Stderr,
		Sources:        sources,
		SkipRepository: true,
	})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	sum, runErr := a.Runner(app.RunOptions{DryRun: true, RecordLimit: -1}).Run(deps.Context())
	printSummary(sum, a.Settings.Location, deps)
	return runErr
}
