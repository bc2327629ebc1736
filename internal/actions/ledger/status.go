package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/footprint-tools/recommit/internal/dispatchers"
	"github.com/footprint-tools/recommit/internal/format"
	"github.com/footprint-tools/recommit/internal/store"
	"github.com/footprint-tools/recommit/internal/ui/style"
)

const recentRunCount = 5

// Status prints what the ledger and the mirror repository look like.
func Status(args []string, flags *dispatchers.ParsedFlags) error {
	return status(args, flags, DefaultDeps())
}

func status(_ []string, _ *dispatchers.ParsedFlags, deps Deps) error {
	settings, err := deps.LoadSettings()
	if err != nil {
		return err
	}
	loc := settings.Location
	if loc == nil {
		loc = time.UTC
	}
	now := deps.Now()

	_, _ = deps.Println(style.Header("repository"))
	printRepository(settings.RepositoryPath, deps)

	ledger, err := deps.OpenLedger(settings)
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()

	version, err := ledger.SchemaVersion()
	if err != nil {
		return fmt.Errorf("read ledger schema: %w", err)
	}

	_, _ = deps.Println()
	_, _ = deps.Println(style.Header("ledger"))
	_, _ = deps.Printf("  path: %s\n", settings.DBPath)
	_, _ = deps.Printf("  schema: v%d\n", version)

	stats, err := ledger.Stats()
	if err != nil {
		return fmt.Errorf("read ledger stats: %w", err)
	}

	_, _ = deps.Println()
	_, _ = deps.Println(style.Header("sources"))
	if len(stats) == 0 {
		_, _ = deps.Println("  no records yet")
	}
	for _, st := range stats {
		_, _ = deps.Printf("  %s: %d records, last commit %s (%s)\n",
			st.Source,
			st.Count,
			format.Full(st.LastCommitTime.In(loc)),
			format.Ago(st.LastCommitTime, now),
		)
	}

	runs, err := ledger.RecentRuns(recentRunCount)
	if err != nil {
		return fmt.Errorf("read recent runs: %w", err)
	}

	_, _ = deps.Println()
	_, _ = deps.Println(style.Header("recent runs"))
	if len(runs) == 0 {
		_, _ = deps.Println("  no runs yet")
	}
	for _, run := range runs {
		_, _ = deps.Printf("  %s %s\n", format.DateTime(run.StartedAt.In(loc)), describeRun(run))
	}

	return nil
}

func printRepository(path string, deps Deps) {
	if path == "" {
		_, _ = deps.Println("  " + style.Warning("repository_path is not set"))
		return
	}
	_, _ = deps.Printf("  path: %s\n", path)

	if !deps.GitIsAvailable() {
		_, _ = deps.Println("  " + style.Warning("git is not installed"))
		return
	}

	root, err := deps.RepoRoot(path)
	if err != nil {
		_, _ = deps.Println("  " + style.Error("not a git repository"))
		return
	}

	branch, err := deps.CurrentBranch(root)
	if err != nil || branch == "" {
		branch = "(detached)"
	}
	_, _ = deps.Printf("  branch: %s\n", branch)

	head, err := deps.HeadCommit(root)
	if err != nil {
		_, _ = deps.Println("  head: " + style.Muted("(no commits)"))
		return
	}
	if len(head) > 7 {
		head = head[:7]
	}
	_, _ = deps.Printf("  head: %s\n", head)
}

func describeRun(run store.Run) string {
	var parts []string

	if run.DryRun {
		parts = append(parts, style.Muted("dry run"))
	}
	parts = append(parts, fmt.Sprintf("fetched %d", run.Fetched))
	if !run.DryRun {
		parts = append(parts, fmt.Sprintf("committed %d", run.Materialized))
	}
	if run.Failed > 0 {
		parts = append(parts, style.Warning(fmt.Sprintf("%d failed", run.Failed)))
	}
	if run.Pushed {
		parts = append(parts, "pushed")
	}

	switch {
	case run.Error != "":
		parts = append(parts, style.Error(run.Error))
	case run.FinishedAt.IsZero():
		parts = append(parts, style.Warning("unfinished"))
	}

	return strings.Join(parts, ", ")
}
