package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/recommit/internal/dispatchers"
)

func TestBuildTree_ReturnsRoot(t *testing.T) {
	root := BuildTree()

	require.NotNil(t, root)
	require.Equal(t, "recommit", root.Name)
	require.Equal(t, []string{"recommit"}, root.Path)
}

func TestBuildTree_HasExpectedTopLevelCommands(t *testing.T) {
	root := BuildTree()

	expectedCommands := []string{"run", "fetch", "status", "log", "version", "config", "help"}
	for _, cmd := range expectedCommands {
		_, found := root.Children[cmd]
		require.True(t, found, "expected top-level command '%s' not found", cmd)
	}
	require.Len(t, root.Children, len(expectedCommands))
}

func TestBuildTree_ConfigHasSubcommands(t *testing.T) {
	root := BuildTree()

	config, found := root.Children["config"]
	require.True(t, found, "config group not found")
	require.Nil(t, config.Action)

	expectedSubcommands := []string{"get", "set", "unset", "list"}
	for _, sub := range expectedSubcommands {
		node, found := config.Children[sub]
		require.True(t, found, "expected config subcommand '%s' not found", sub)
		require.Equal(t, []string{"recommit", "config", sub}, node.Path)
	}
}

func TestBuildTree_CommandsHaveActions(t *testing.T) {
	root := BuildTree()

	var walk func(n *dispatchers.DispatchNode)
	walk = func(n *dispatchers.DispatchNode) {
		for name, child := range n.Children {
			if len(child.Children) > 0 || name == "help" {
				walk(child)
				continue
			}
			require.NotNil(t, child.Action, "command %v has no action", child.Path)
		}
	}
	walk(root)
}

func TestBuildTree_CommandsHaveCategories(t *testing.T) {
	root := BuildTree()

	require.Equal(t, dispatchers.CategoryMirror, root.Children["run"].Category)
	require.Equal(t, dispatchers.CategoryMirror, root.Children["fetch"].Category)
	require.Equal(t, dispatchers.CategoryInspect, root.Children["log"].Category)
	require.Equal(t, dispatchers.CategoryInspect, root.Children["status"].Category)
	require.Equal(t, dispatchers.CategoryConfig, root.Children["config"].Category)
}

func TestBuildTree_DispatchRunFlags(t *testing.T) {
	root := BuildTree()

	res, err := dispatchers.Dispatch(root, []string{"run"}, dispatchers.NewParsedFlags([]string{"--dry-run", "--limit=3"}))
	require.NoError(t, err)
	require.Equal(t, "run", res.Node.Name)
	require.NotNil(t, res.Execute)
}

func TestBuildTree_DispatchRejectsForeignFlag(t *testing.T) {
	root := BuildTree()

	_, err := dispatchers.Dispatch(root, []string{"log"}, dispatchers.NewParsedFlags([]string{"--dry-run"}))
	require.Error(t, err)
}

func TestBuildTree_DispatchConfigSetNeedsValue(t *testing.T) {
	root := BuildTree()

	_, err := dispatchers.Dispatch(root, []string{"config", "set", "timezone"}, dispatchers.NewParsedFlags(nil))
	require.Error(t, err)
}

func TestBuildTree_GlobalFlagsAcceptedEverywhere(t *testing.T) {
	root := BuildTree()

	res, err := dispatchers.Dispatch(root, []string{"status"}, dispatchers.NewParsedFlags([]string{"--no-color", "--pager=cat"}))
	require.NoError(t, err)
	require.Equal(t, "status", res.Node.Name)
}

func TestValueFlags(t *testing.T) {
	vf := ValueFlags()

	for _, name := range []string{"--limit", "--source", "--since", "--until", "--format", "--pager"} {
		require.True(t, vf[name], "%s should take a value", name)
	}
	for _, name := range []string{"--dry-run", "--no-push", "--verbose", "--json", "--all", "--help"} {
		require.False(t, vf[name], "%s should not take a value", name)
	}
}
