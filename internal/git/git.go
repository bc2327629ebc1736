package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/footprint-tools/recommit/internal/log"
)

// commitHashPattern validates git commit hashes (SHA-1 or SHA-256)
var commitHashPattern = regexp.MustCompile(`^[a-fA-F0-9]{7,64}$`)

// IsCommitHash reports whether s looks like a full or abbreviated commit hash.
func IsCommitHash(s string) bool {
	return commitHashPattern.MatchString(s)
}

func IsAvailable() bool {
	path, err := exec.LookPath("git")
	if err != nil {
		return false
	}
	// Verify git is functional by running a simple command
	cmd := exec.Command(path, "--version")
	return cmd.Run() == nil
}

func RepoRoot(path string) (string, error) {
	return runGit(context.Background(), nil, "-C", path, "rev-parse", "--show-toplevel")
}

func OriginURL(repoRoot string) (string, error) {
	return runGit(context.Background(), nil, "-C", repoRoot, "remote", "get-url", "origin")
}

// HeadCommit returns the commit hash HEAD points to in repoRoot.
func HeadCommit(repoRoot string) (string, error) {
	return runGit(context.Background(), nil, "-C", repoRoot, "rev-parse", "HEAD")
}

// CurrentBranch returns the short name of the checked out branch.
func CurrentBranch(repoRoot string) (string, error) {
	return runGit(context.Background(), nil, "-C", repoRoot, "rev-parse", "--abbrev-ref", "HEAD")
}

// runGit runs git with args. extraEnv entries are appended to the process
// environment. The returned error carries git's combined output.
func runGit(ctx context.Context, extraEnv []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		log.Debug("git: command failed: git %s: %v", strings.Join(args, " "), err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if msg := strings.TrimSpace(out.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", gitSubcommand(args), err, msg)
		}
		return "", fmt.Errorf("git %s: %w", gitSubcommand(args), err)
	}
	return strings.TrimSpace(out.String()), nil
}

// runGitInRepo runs a git command in the specified repository directory.
func runGitInRepo(ctx context.Context, repoPath string, extraEnv []string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	return runGit(ctx, extraEnv, fullArgs...)
}

// gitSubcommand returns the first argument that is not part of a -C option.
func gitSubcommand(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-C" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}
