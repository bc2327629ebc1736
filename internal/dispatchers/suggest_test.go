package dispatchers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindSimilarCommands(t *testing.T) {
	root := createTestTree()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"transposition", "verison", []string{"version"}},
		{"missing letter", "rn", []string{"run"}},
		{"case insensitive", "RUN", nil},
		{"nothing close", "xxxxxxxxxx", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilarCommands(tt.input, root, 3)
			if tt.want == nil {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFindSimilarCommands_NilNode(t *testing.T) {
	require.Nil(t, FindSimilarCommands("run", nil, 3))
}

func TestCollectAllCommands(t *testing.T) {
	root := createTestTree()

	got := CollectAllCommands(root, "")
	sort.Strings(got)

	require.Equal(t, []string{"config", "config get", "config set", "run", "version"}, got)
}
