// Package ui provides terminal output helpers including pager support.
//
// SECURITY NOTE: The pager functionality intentionally allows execution of
// arbitrary commands specified via --pager flag or config. This is standard
// behavior for CLI tools (similar to git, less, man) and requires local
// access to exploit. Users should only configure pagers they trust.
package ui

import (
	"sync"

	"github.com/footprint-tools/recommit/internal/config"
)

var (
	pagerDisabled bool
	pagerOverride string
	pagerMu       sync.RWMutex
)

// DisablePager disables the pager globally (used by --no-pager flag).
func DisablePager() {
	pagerMu.Lock()
	pagerDisabled = true
	pagerMu.Unlock()
}

// SetPager sets a pager override for this invocation (used by --pager flag).
func SetPager(cmd string) {
	pagerMu.Lock()
	pagerOverride = cmd
	pagerMu.Unlock()
}

// ResetPager clears the global pager flags.
func ResetPager() {
	pagerMu.Lock()
	pagerDisabled = false
	pagerOverride = ""
	pagerMu.Unlock()
}

// GlobalOptions returns writer options reflecting the global pager flags
// and the configured pager.
func GlobalOptions() []WriterOption {
	pagerMu.RLock()
	defer pagerMu.RUnlock()

	opts := []WriterOption{WithConfigGetter(config.Get)}
	if pagerDisabled {
		opts = append(opts, WithPagerDisabled())
	}
	if pagerOverride != "" {
		opts = append(opts, WithPagerOverride(pagerOverride))
	}
	return opts
}

// Pager displays content on stdout through a pager if appropriate.
//
// Precedence:
//  1. --no-pager flag → direct output
//  2. stdout not a TTY → direct output
//  3. --pager=<cmd> flag → uses flag pager, "cat" bypasses
//  4. recommit config pager → uses configured pager, "cat" bypasses
//  5. $PAGER env var → uses env pager, "cat" bypasses
//  6. Default: "less -FRSX"
func Pager(content string) {
	NewWriter(GlobalOptions()...).Pager(content)
}
