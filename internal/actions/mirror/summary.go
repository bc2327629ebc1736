package mirror

import (
	"fmt"
	"time"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/format"
	"github.com/footprint-tools/recommit/internal/runner"
	"github.com/footprint-tools/recommit/internal/ui/style"
)

func printSummary(sum runner.Summary, loc *time.Location, deps Deps) {
	for _, src := range sum.Sources {
		if src.Err != nil {
			_, _ = deps.Printf("%s %s: %v\n", style.Error("error"), src.Source, src.Err)
			continue
		}
		_, _ = deps.Printf("%s: %d new events in %d pages\n", src.Source, src.Fetched, src.Pages)
	}

	if sum.DryRun {
		for _, rec := range sum.Records {
			_, _ = deps.Printf("%s %s\n", style.Info("would commit"), formatRecord(rec, loc))
		}
		_, _ = deps.Printf("%d records would be committed\n", len(sum.Records))
		return
	}

	for _, rec := range sum.Records {
		_, _ = deps.Printf("%s %s\n", style.Header(rec.ShortHash()), formatRecord(rec, loc))
	}

	_, _ = deps.Printf("%s %d records", style.Success("committed"), sum.Materialized)
	if sum.Failed > 0 {
		_, _ = deps.Printf(", %s", style.Warning(fmt.Sprintf("%d failed", sum.Failed)))
	}
	if sum.Duplicates > 0 {
		_, _ = deps.Printf(", %d already recorded", sum.Duplicates)
	}
	if sum.Skipped > 0 {
		_, _ = deps.Printf(", %s", style.Muted(fmt.Sprintf("%d left for the next run", sum.Skipped)))
	}
	_, _ = deps.Println()

	switch {
	case sum.Pushed:
		_, _ = deps.Println(style.Success("pushed to origin"))
	case sum.PushErr != nil:
		_, _ = deps.Printf("%s %v\n", style.Error("push failed:"), sum.PushErr)
	}
}

func formatRecord(rec domain.CommitRecord, loc *time.Location) string {
	ts := rec.Timestamp
	if loc != nil {
		ts = ts.In(loc)
	}
	s := fmt.Sprintf("%s/%s %s", rec.Source, rec.ID, style.Muted(format.Full(ts)))
	if rec.Iteration > 0 {
		s += style.Muted(fmt.Sprintf(" (#%d)", rec.Iteration))
	}
	return s
}
