package cli

import (
	"github.com/footprint-tools/recommit/internal/actions"
	configactions "github.com/footprint-tools/recommit/internal/actions/config"
	"github.com/footprint-tools/recommit/internal/actions/ledger"
	"github.com/footprint-tools/recommit/internal/actions/mirror"
	"github.com/footprint-tools/recommit/internal/dispatchers"
)

func BuildTree() *dispatchers.DispatchNode {
	root := dispatchers.Root(dispatchers.RootSpec{
		Name:    "recommit",
		Summary: "Mirror your GitLab activity as commits in a git repository",
		Usage:   "recommit [--help] [--no-color] [--no-pager] <command> [args]",
		Flags:   RootFlags,
	})

	addMirrorCommands(root)
	addInspectCommands(root)
	addConfigCommands(root)

	dispatchers.Command(dispatchers.CommandSpec{
		Name:    "help",
		Parent:  root,
		Summary: "Show help for a command",
		Usage:   "recommit help [command]",
	})

	return root
}

func addMirrorCommands(root *dispatchers.DispatchNode) {
	dispatchers.Command(dispatchers.CommandSpec{
		Name:    "run",
		Parent:  root,
		Summary: "Fetch new events and commit them to the mirror repository",
		Description: `Queries every configured source for events newer than the ones already
recorded, writes one commit per new event into repository_path and pushes
the result to origin.

Events are committed oldest first. Each commit is dated with the event's
own timestamp in the configured timezone. A failed commit is reported and
left for the next run; the ledger only records events that made it into
the repository.

With --dry-run nothing is written: the new events are listed instead.`,
		Usage:    "recommit run [--dry-run] [--no-push] [--limit=<n>] [--verbose]",
		Flags:    RunFlags,
		Action:   mirror.Run,
		Category: dispatchers.CategoryMirror,
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:    "fetch",
		Parent:  root,
		Summary: "List events a run would commit",
		Description: `Queries the sources like run does and prints the events that are not in
the ledger yet. The mirror repository is not required and nothing is
written.`,
		Usage:    "recommit fetch [--source=<name>] [--verbose]",
		Flags:    FetchFlags,
		Action:   mirror.Fetch,
		Category: dispatchers.CategoryMirror,
	})
}

func addInspectCommands(root *dispatchers.DispatchNode) {
	dispatchers.Command(dispatchers.CommandSpec{
		Name:     "status",
		Parent:   root,
		Summary:  "Show ledger totals, recent runs and the repository state",
		Usage:    "recommit status",
		Action:   ledger.Status,
		Category: dispatchers.CategoryInspect,
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:    "log",
		Parent:  root,
		Summary: "List recorded events, newest first",
		Description: `Reads the ledger of events already committed to the mirror repository.
Dates given to --since and --until are interpreted in the configured
timezone and both ends are inclusive.`,
		Usage:    "recommit log [--limit=<n>] [--source=<name>] [--since=<date>] [--until=<date>] [--format=<fmt>]",
		Flags:    LogFlags,
		Action:   ledger.Log,
		Category: dispatchers.CategoryInspect,
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:     "version",
		Parent:   root,
		Summary:  "Show recommit version",
		Usage:    "recommit version",
		Action:   actions.ShowVersion,
		Category: dispatchers.CategoryInspect,
	})
}

func addConfigCommands(root *dispatchers.DispatchNode) {
	config := dispatchers.Group(dispatchers.GroupSpec{
		Name:    "config",
		Parent:  root,
		Summary: "Manage configuration",
		Description: `Settings are read from the environment first, then from the config file
(~/.recommitrc), then from built-in defaults. These commands
only edit the config file.`,
		Usage:    "recommit config <command>",
		Category: dispatchers.CategoryConfig,
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:     "get",
		Parent:   config,
		Summary:  "Print the effective value of a key",
		Usage:    "recommit config get <key>",
		Args:     ConfigKeyArg,
		Action:   configactions.Get,
		Category: dispatchers.CategoryConfig,
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:     "set",
		Parent:   config,
		Summary:  "Write a key to the config file",
		Usage:    "recommit config set <key> <value>",
		Args:     ConfigKeyValueArgs,
		Action:   configactions.Set,
		Category: dispatchers.CategoryConfig,
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:     "unset",
		Parent:   config,
		Summary:  "Remove a key from the config file",
		Usage:    "recommit config unset <key> | --all",
		Flags:    ConfigUnsetFlags,
		Args:     OptionalConfigKeyArg,
		Action:   configactions.Unset,
		Category: dispatchers.CategoryConfig,
	})

	dispatchers.Command(dispatchers.CommandSpec{
		Name:     "list",
		Parent:   config,
		Summary:  "List every setting with its origin",
		Usage:    "recommit config list [--json]",
		Flags:    ConfigListFlags,
		Action:   configactions.List,
		Category: dispatchers.CategoryConfig,
	})
}
