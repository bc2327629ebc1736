package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestAppDataDir_CreatesDirectory(t *testing.T) {
	home := setupTempConfigHome(t)

	dir := AppDataDir()

	require.True(t, strings.HasPrefix(dir, home))
	require.Equal(t, "recommit", filepath.Base(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestConfigFilePath_UnderHomeDir(t *testing.T) {
	home := setupTempConfigHome(t)

	path, err := ConfigFilePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".recommitrc"), path)
}

func TestLogFilePath_IsUnderAppDataDir(t *testing.T) {
	setupTempConfigHome(t)

	require.Equal(t, AppDataDir(), filepath.Dir(LogFilePath()))
	require.Equal(t, "recommit.log", filepath.Base(LogFilePath()))
}

func TestDBPath_IsUnderAppDataDir(t *testing.T) {
	setupTempConfigHome(t)

	require.Equal(t, AppDataDir(), filepath.Dir(DBPath()))
	require.Equal(t, "commits.db", filepath.Base(DBPath()))
}

func TestPaths_NoDotDotComponents(t *testing.T) {
	setupTempConfigHome(t)

	cfg, err := ConfigFilePath()
	require.NoError(t, err)

	for _, p := range []string{AppDataDir(), LogFilePath(), DBPath(), cfg} {
		require.NotContains(t, p, "..", "path %q should be clean", p)
	}
}
