package dispatchers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/footprint-tools/recommit/internal/ui"
	"github.com/footprint-tools/recommit/internal/ui/style"
)

// commandDisplayOrder defines explicit ordering within categories.
// Commands not listed appear alphabetically after listed ones.
var commandDisplayOrder = map[string]int{
	// mirror activity
	"run":   1,
	"fetch": 2,
	// inspect ledger and state
	"status":  1,
	"log":     2,
	"version": 3,
	// config commands
	"config get":   1,
	"config set":   2,
	"config unset": 3,
	"config list":  4,
}

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	cmdEnd := strings.IndexAny(usage, "[<")
	if cmdEnd == -1 {
		return style.Info(strings.TrimSpace(usage))
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	return style.Info(cmd) + " " + style.Muted(usage[cmdEnd:])
}

func collectLeafCommands(node *DispatchNode, out *[]*DispatchNode) {
	if node.Action != nil {
		*out = append(*out, node)
		return
	}

	for _, child := range node.Children {
		collectLeafCommands(child, out)
	}
}

func sortByDisplayOrder(nodes []*DispatchNode) {
	sort.Slice(nodes, func(i, j int) bool {
		nameI := strings.Join(nodes[i].Path[1:], " ")
		nameJ := strings.Join(nodes[j].Path[1:], " ")
		orderI, hasI := commandDisplayOrder[nameI]
		orderJ, hasJ := commandDisplayOrder[nameJ]
		if hasI && hasJ {
			return orderI < orderJ
		}
		if hasI {
			return true
		}
		if hasJ {
			return false
		}
		return nameI < nameJ
	})
}

func writeFlags(out *strings.Builder, title string, flags []FlagDescriptor) {
	if len(flags) == 0 {
		return
	}
	out.WriteString(title)
	out.WriteString("\n")
	for _, f := range flags {
		name := strings.Join(f.Names, ", ")
		if f.ValueHint != "" {
			name = name + "=" + f.ValueHint
		}
		fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-24s", name)), f.Description)
	}
	out.WriteString("\n")
}

// RenderHelp builds the help text for a node.
func RenderHelp(node *DispatchNode, root *DispatchNode) string {
	var out strings.Builder

	if node == root {
		// Root help: git-like format
		out.WriteString(root.Name)
		out.WriteString(" - ")
		out.WriteString(node.Summary)
		out.WriteString("\n\n")

		out.WriteString("USAGE\n   ")
		out.WriteString(formatUsage(node.Usage))
		out.WriteString("\n\n")

		var leaves []*DispatchNode
		for _, child := range root.Children {
			collectLeafCommands(child, &leaves)
		}

		grouped := make(map[CommandCategory][]*DispatchNode)
		for _, cmd := range leaves {
			grouped[cmd.Category] = append(grouped[cmd.Category], cmd)
		}

		for _, cat := range categoryOrder {
			cmds := grouped[cat]
			if len(cmds) == 0 {
				continue
			}

			out.WriteString(cat.String())
			out.WriteString("\n")

			sortByDisplayOrder(cmds)
			for _, cmd := range cmds {
				displayName := strings.Join(cmd.Path[1:], " ")
				fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-16s", displayName)), cmd.Summary)
			}
			out.WriteString("\n")
		}

		writeFlags(&out, "GLOBAL FLAGS", root.Flags)

		fmt.Fprintf(&out, "See '%s help <command>' for detailed help on a specific command.\n", root.Name)
		return out.String()
	}

	out.WriteString(strings.Join(node.Path, " "))
	if node.Summary != "" {
		out.WriteString(" - ")
		out.WriteString(node.Summary)
	}
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(node.Usage))
	out.WriteString("\n\n")

	if node.Description != "" {
		out.WriteString(node.Description)
		out.WriteString("\n\n")
	}

	if len(node.Children) > 0 {
		out.WriteString("COMMANDS\n")

		children := make([]*DispatchNode, 0, len(node.Children))
		for _, child := range node.Children {
			children = append(children, child)
		}
		sortByDisplayOrder(children)

		for _, child := range children {
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-12s", child.Name)), child.Summary)
		}
		out.WriteString("\n")
	}

	if len(node.Args) > 0 {
		out.WriteString("ARGUMENTS\n")
		for _, a := range node.Args {
			desc := a.Description
			if !a.Required {
				desc += " (optional)"
			}
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-24s", "<"+a.Name+">")), desc)
		}
		out.WriteString("\n")
	}

	writeFlags(&out, "FLAGS", node.Flags)

	fmt.Fprintf(&out, "See '%s help <command>' to read about a specific command.\n", root.Name)
	return out.String()
}

// HelpAction prints help for a command node through the pager.
func HelpAction(node *DispatchNode, root *DispatchNode) CommandFunc {
	return func(args []string, flags *ParsedFlags) error {
		ui.Pager(RenderHelp(node, root))
		return nil
	}
}
