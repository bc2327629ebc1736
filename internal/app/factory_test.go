package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/recommit/internal/config"
	"github.com/footprint-tools/recommit/internal/git"
	"github.com/footprint-tools/recommit/internal/log"
	"github.com/footprint-tools/recommit/internal/paths"
	"github.com/footprint-tools/recommit/internal/source/gitlab"
	"github.com/footprint-tools/recommit/internal/usage"
)

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	return config.Settings{
		RepositoryPath:  t.TempDir(),
		Location:        time.UTC,
		MarkerFile:      "meta",
		Push:            true,
		GitLabURL:       "https://gitlab.example.com",
		GitLabUsername:  "jdoe",
		GitLabToken:     "token",
		GitLabRateLimit: 5,
		PageSize:        50,
		DBPath:          filepath.Join(t.TempDir(), "nested", "commits.db"),
		LogLevel:        log.LevelDebug,
		LogMaxSizeMB:    10,
		LogBackups:      25,
	}
}

func requireKind(t *testing.T, err error, kind usage.ErrorKind) {
	t.Helper()
	var ue *usage.Error
	require.True(t, errors.As(err, &ue), "expected *usage.Error, got %v", err)
	require.Equal(t, kind, ue.Kind)
}

func TestSourceTags(t *testing.T) {
	require.Equal(t, []string{gitlab.Tag}, SourceTags())
}

func TestBuildSources(t *testing.T) {
	s := testSettings(t)

	all, err := buildSources(s, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, gitlab.Tag, all[0].Tag())

	only, err := buildSources(s, []string{"gitlab"})
	require.NoError(t, err)
	require.Len(t, only, 1)

	_, err = buildSources(s, []string{"github"})
	requireKind(t, err, usage.ErrInvalidFlag)
}

func TestOpenStore_CreatesDirectory(t *testing.T) {
	s := testSettings(t)

	st, err := OpenStore(s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.True(t, st.IsOpen())
	require.FileExists(t, s.DBPath)
}

func TestOpenStore_Unavailable(t *testing.T) {
	s := testSettings(t)
	s.DBPath = filepath.Join(t.TempDir(), "missing-dir-is-a-file")
	require.NoError(t, os.WriteFile(s.DBPath, nil, 0600))
	s.DBPath = filepath.Join(s.DBPath, "commits.db")

	_, err := OpenStore(s)
	requireKind(t, err, usage.ErrStorage)
}

func TestNew_MissingSettings(t *testing.T) {
	s := testSettings(t)
	s.GitLabToken = ""

	_, err := New(s, Options{})
	requireKind(t, err, usage.ErrMissingConfig)
}

func TestNew_SkipRepository(t *testing.T) {
	s := testSettings(t)

	a, err := New(s, Options{SkipRepository: true, Sources: []string{"gitlab"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.Nil(t, a.Materializer)
	require.Len(t, a.Sources, 1)
	require.NotNil(t, a.Store)
	require.NotNil(t, a.Metrics)
	require.NotNil(t, a.Runner(RunOptions{DryRun: true, RecordLimit: -1}))
}

func TestNew_SkipRepositoryWithoutRepositoryPath(t *testing.T) {
	s := testSettings(t)
	s.RepositoryPath = ""

	a, err := New(s, Options{SkipRepository: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	require.Nil(t, a.Materializer)

	_, err = New(s, Options{})
	requireKind(t, err, usage.ErrMissingConfig)
}

func TestSetupLogging_WritesRotatingFile(t *testing.T) {
	t.Cleanup(func() { log.SetDefault(nil) })
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	s := testSettings(t)
	s.EnableLog = true
	logger := SetupLogging(s, false, nil)
	logger.Info("fetched %d records", 3)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(paths.LogFilePath())
	require.NoError(t, err)
	require.Contains(t, string(data), "INFO: fetched 3 records")
}

func TestNew_NotARepository(t *testing.T) {
	if !git.IsAvailable() {
		t.Skip("git not available")
	}
	s := testSettings(t)

	_, err := New(s, Options{})
	requireKind(t, err, usage.ErrInvalidRepo)
}

func TestNewMaterializer(t *testing.T) {
	if !git.IsAvailable() {
		t.Skip("git not available")
	}
	s := testSettings(t)
	out, err := exec.Command("git", "init", "--quiet", s.RepositoryPath).CombinedOutput()
	require.NoError(t, err, string(out))

	m, err := NewMaterializer(s)
	require.NoError(t, err)
	require.Equal(t, "meta", m.MarkerFile)
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() { log.SetDefault(nil) })

	s := testSettings(t)
	s.EnableLog = false

	require.IsType(t, log.NopLogger{}, SetupLogging(s, false, nil))

	var stderr bytes.Buffer
	logger := SetupLogging(s, true, &stderr)
	logger.Info("hello %s", "world")
	logger.Debug("hidden")

	require.Contains(t, stderr.String(), "INFO: hello world")
	require.NotContains(t, stderr.String(), "hidden")
}

func TestClose_Nil(t *testing.T) {
	var a *App
	require.NoError(t, a.Close())
	require.NoError(t, (&App{}).Close())
}

func TestContext(t *testing.T) {
	t.Cleanup(func() { SetContext(context.Background()) })

	require.NotNil(t, Context())

	ctx, cancel := context.WithCancel(context.Background())
	SetContext(ctx)
	cancel()

	require.ErrorIs(t, Context().Err(), context.Canceled)
}
