package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/log"
)

// DefaultMarkerFile is the file rewritten by every materialized commit.
const DefaultMarkerFile = "meta"

// DateLayout is the format passed to GIT_AUTHOR_DATE and GIT_COMMITTER_DATE.
const DateLayout = "2006-01-02 15:04:05 -0700"

// ErrInvalidHash is returned when git reports something that is not a hash.
var ErrInvalidHash = errors.New("git returned an invalid commit hash")

// Materializer records commit records as backdated commits in a repository.
type Materializer struct {
	RepoPath   string
	Location   *time.Location // nil means UTC
	MarkerFile string         // relative to RepoPath; empty means DefaultMarkerFile
}

// NewMaterializer creates a Materializer for the repository at repoPath.
func NewMaterializer(repoPath string, loc *time.Location, markerFile string) *Materializer {
	return &Materializer{
		RepoPath:   repoPath,
		Location:   loc,
		MarkerFile: markerFile,
	}
}

// Materialize writes the record id into the marker file, commits it dated at
// the record timestamp and returns the new commit hash.
func (m *Materializer) Materialize(ctx context.Context, rec domain.CommitRecord) (string, error) {
	marker := m.markerPath()

	log.Debug("git: updating marker file %s with %s", marker, rec.ID)
	if err := os.WriteFile(marker, []byte(rec.ID), 0644); err != nil {
		return "", fmt.Errorf("write marker file: %w", err)
	}

	if _, err := runGitInRepo(ctx, m.RepoPath, nil, "add", "--", marker); err != nil {
		return "", err
	}

	date := m.CommitDate(rec)
	env := []string{
		"GIT_AUTHOR_DATE=" + date,
		"GIT_COMMITTER_DATE=" + date,
	}

	// The marker may already hold this id (a repeated event), so empty commits are allowed.
	if _, err := runGitInRepo(ctx, m.RepoPath, env, "commit", "--allow-empty", "--quiet", "-m", rec.ID); err != nil {
		return "", err
	}

	hash, err := runGitInRepo(ctx, m.RepoPath, nil, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	if !IsCommitHash(hash) {
		return "", fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}

	log.Debug("git: committed %s as %s (%s)", rec.ID, hash, date)
	return hash, nil
}

// Push publishes HEAD to origin.
func (m *Materializer) Push(ctx context.Context) error {
	log.Info("git: pushing %s to origin", m.RepoPath)
	_, err := runGitInRepo(ctx, m.RepoPath, nil, "push", "--quiet", "origin", "HEAD")
	return err
}

// Unpushed counts commits reachable from HEAD that no origin ref contains.
// Without any origin refs every commit counts.
func (m *Materializer) Unpushed(ctx context.Context) (int, error) {
	out, err := runGitInRepo(ctx, m.RepoPath, nil, "rev-list", "--count", "HEAD", "--not", "--remotes=origin")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("git rev-list: unexpected output %q", out)
	}
	return n, nil
}

// CommitDate formats the record timestamp in the configured location.
func (m *Materializer) CommitDate(rec domain.CommitRecord) string {
	loc := m.Location
	if loc == nil {
		loc = time.UTC
	}
	return rec.Timestamp.In(loc).Format(DateLayout)
}

func (m *Materializer) markerPath() string {
	name := m.MarkerFile
	if name == "" {
		name = DefaultMarkerFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.RepoPath, name)
}

// Verify Materializer implements domain.Materializer
var _ domain.Materializer = (*Materializer)(nil)
