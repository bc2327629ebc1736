package dispatchers

import "github.com/footprint-tools/recommit/internal/suggest"

// maxCommandDistance bounds how far a typo may be from a command name.
const maxCommandDistance = 3

// FindSimilarCommands finds commands similar to the input string
// It searches in the given node's children and returns up to maxResults suggestions
func FindSimilarCommands(input string, node *DispatchNode, maxResults int) []string {
	if node == nil || node.Children == nil {
		return nil
	}

	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}

	return suggest.Closest(input, names, maxCommandDistance, maxResults)
}

// CollectAllCommands recursively collects all command names from a node tree
// This can be used for global command suggestions
func CollectAllCommands(node *DispatchNode, prefix string) []string {
	if node == nil {
		return nil
	}

	var commands []string

	for name, child := range node.Children {
		fullPath := name
		if prefix != "" {
			fullPath = prefix + " " + name
		}
		commands = append(commands, fullPath)
		commands = append(commands, CollectAllCommands(child, fullPath)...)
	}

	return commands
}
