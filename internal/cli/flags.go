package cli

import "github.com/footprint-tools/recommit/internal/dispatchers"

var (
	RootFlags = []dispatchers.FlagDescriptor{
		{
			Names:       []string{"--help", "-h"},
			Description: "Show help",
			Scope:       dispatchers.FlagScopeGlobal,
		},
		{
			Names:       []string{"--no-color"},
			Description: "Disable colored output",
			Scope:       dispatchers.FlagScopeGlobal,
		},
		{
			Names:       []string{"--no-pager"},
			Description: "Do not use pager for output",
			Scope:       dispatchers.FlagScopeGlobal,
		},
		{
			Names:       []string{"--pager"},
			ValueHint:   "<cmd>",
			Description: "Use specified pager for this command",
			Scope:       dispatchers.FlagScopeGlobal,
		},
	}

	verboseFlag = dispatchers.FlagDescriptor{
		Names:       []string{"--verbose"},
		Description: "Log progress to stderr",
		Scope:       dispatchers.FlagScopeLocal,
	}

	RunFlags = []dispatchers.FlagDescriptor{
		{
			Names:       []string{"--dry-run"},
			Description: "Show what would be committed without touching the repository or the ledger",
			Scope:       dispatchers.FlagScopeLocal,
		},
		{
			Names:       []string{"--no-push"},
			Description: "Commit locally but do not push to origin",
			Scope:       dispatchers.FlagScopeLocal,
		},
		{
			Names:       []string{"--limit"},
			ValueHint:   "<n>",
			Description: "Materialize at most n records (0 for all)",
			Scope:       dispatchers.FlagScopeLocal,
		},
		verboseFlag,
	}

	FetchFlags = []dispatchers.FlagDescriptor{
		{
			Names:       []string{"--source"},
			ValueHint:   "<name>",
			Description: "Only query this source (e.g. gitlab)",
			Scope:       dispatchers.FlagScopeLocal,
		},
		verboseFlag,
	}

	LogFlags = []dispatchers.FlagDescriptor{
		{
			Names:       []string{"--limit"},
			ValueHint:   "<n>",
			Description: "Show at most n records (default 20, 0 for all)",
			Scope:       dispatchers.FlagScopeLocal,
		},
		{
			Names:       []string{"--source"},
			ValueHint:   "<name>",
			Description: "Filter by source",
			Scope:       dispatchers.FlagScopeLocal,
		},
		{
			Names:       []string{"--since"},
			ValueHint:   "<date>",
			Description: "Show records on or after date (YYYY-MM-DD)",
			Scope:       dispatchers.FlagScopeLocal,
		},
		{
			Names:       []string{"--until"},
			ValueHint:   "<date>",
			Description: "Show records on or before date (YYYY-MM-DD)",
			Scope:       dispatchers.FlagScopeLocal,
		},
		{
			Names:       []string{"--format"},
			ValueHint:   "<fmt>",
			Description: "Output format: text, json or yaml",
			Scope:       dispatchers.FlagScopeLocal,
		},
	}

	ConfigUnsetFlags = []dispatchers.FlagDescriptor{
		{
			Names:       []string{"--all"},
			Description: "Delete all the config key=value pairs",
			Scope:       dispatchers.FlagScopeLocal,
		},
	}

	ConfigListFlags = []dispatchers.FlagDescriptor{
		{
			Names:       []string{"--json"},
			Description: "Output as JSON",
			Scope:       dispatchers.FlagScopeLocal,
		},
	}
)

// ValueFlags lists every flag that takes a value, so "--flag value" can be
// rewritten to "--flag=value" before dispatch.
func ValueFlags() map[string]bool {
	out := make(map[string]bool)
	groups := [][]dispatchers.FlagDescriptor{RootFlags, RunFlags, FetchFlags, LogFlags}
	for _, group := range groups {
		for _, f := range group {
			if f.ValueHint == "" {
				continue
			}
			for _, name := range f.Names {
				out[name] = true
			}
		}
	}
	return out
}
