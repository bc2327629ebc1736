package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/recommit/internal/dispatchers"
	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/format"
	"github.com/footprint-tools/recommit/internal/store"
	"github.com/footprint-tools/recommit/internal/ui/style"
	"github.com/footprint-tools/recommit/internal/usage"
)

const defaultLogLimit = 20

// recordView is the serialized form of a ledger record.
type recordView struct {
	ID            string `json:"id" yaml:"id"`
	Source        string `json:"source" yaml:"source"`
	ProjectID     int64  `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Iteration     int    `json:"iteration" yaml:"iteration"`
	CommitHash    string `json:"commit_hash" yaml:"commit_hash"`
	Timestamp     string `json:"timestamp" yaml:"timestamp"`
	SeenTimestamp string `json:"seen_timestamp" yaml:"seen_timestamp"`
}

func newRecordView(rec domain.CommitRecord, loc *time.Location) recordView {
	return recordView{
		ID:            rec.ID,
		Source:        rec.Source,
		ProjectID:     rec.ProjectID,
		Iteration:     rec.Iteration,
		CommitHash:    rec.CommitHash,
		Timestamp:     rec.Timestamp.In(loc).Format(time.RFC3339),
		SeenTimestamp: rec.SeenTimestamp.In(loc).Format(time.RFC3339),
	}
}

// Log lists ledger records, newest first.
func Log(args []string, flags *dispatchers.ParsedFlags) error {
	return logRecords(args, flags, DefaultDeps())
}

func logRecords(_ []string, flags *dispatchers.ParsedFlags, deps Deps) error {
	outputFormat := flags.String("--format", "text")
	switch outputFormat {
	case "text", "json", "yaml":
	default:
		return usage.InvalidFlagValue("--format", outputFormat, "text, json or yaml")
	}

	settings, err := deps.LoadSettings()
	if err != nil {
		return err
	}
	loc := settings.Location
	if loc == nil {
		loc = time.UTC
	}

	filter, err := parseFilter(flags, loc)
	if err != nil {
		return err
	}

	ledger, err := deps.OpenLedger(settings)
	if err != nil {
		return err
	}
	defer func() { _ = ledger.Close() }()

	records, err := ledger.List(filter)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}

	switch outputFormat {
	case "json":
		return printJSON(records, loc, deps)
	case "yaml":
		return printYAML(records, loc, deps)
	}

	if len(records) == 0 {
		_, _ = deps.Println("no records")
		return nil
	}

	var out strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&out, "%s %s %s\n", style.Header(rec.ShortHash()), rec.Source+"/"+rec.ID, style.Muted(format.Full(rec.Timestamp.In(loc))))
		if rec.Iteration > 0 {
			fmt.Fprintf(&out, "    %s\n", style.Muted(fmt.Sprintf("iteration %d", rec.Iteration)))
		}
	}
	deps.Pager(out.String())
	return nil
}

func parseFilter(flags *dispatchers.ParsedFlags, loc *time.Location) (store.RecordFilter, error) {
	filter := store.RecordFilter{
		Source: flags.String("--source", ""),
		Limit:  defaultLogLimit,
	}

	if raw, ok := flags.Lookup("--limit"); ok {
		n, err := parseNonNegative(raw)
		if err != nil {
			return filter, usage.InvalidFlagValue("--limit", raw, "a whole number, 0 for all")
		}
		filter.Limit = n
	}

	if raw := flags.String("--since", ""); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return filter, usage.InvalidFlagValue("--since", raw, "YYYY-MM-DD")
		}
		filter.Since = &t
	}

	if raw := flags.String("--until", ""); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return filter, usage.InvalidFlagValue("--until", raw, "YYYY-MM-DD")
		}
		// Inclusive: the whole day.
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.Until = &end
	}

	return filter, nil
}

func parseNonNegative(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

func views(records []domain.CommitRecord, loc *time.Location) []recordView {
	out := make([]recordView, 0, len(records))
	for _, rec := range records {
		out = append(out, newRecordView(rec, loc))
	}
	return out
}

func printJSON(records []domain.CommitRecord, loc *time.Location, deps Deps) error {
	data, err := json.MarshalIndent(views(records, loc), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = deps.Println(string(data))
	return nil
}

func printYAML(records []domain.CommitRecord, loc *time.Location, deps Deps) error {
	data, err := yaml.Marshal(views(records, loc))
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, _ = deps.Printf("%s", data)
	return nil
}
