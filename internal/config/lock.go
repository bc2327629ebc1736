package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/footprint-tools/recommit/internal/log"
	"github.com/footprint-tools/recommit/internal/paths"
)

// ErrLockTimeout is returned when another process keeps ~/.recommitrc locked.
var ErrLockTimeout = errors.New("config: lock timeout")

// Tunable in tests.
var (
	lockTimeout      = 5 * time.Second
	staleLockAge     = 30 * time.Second
	lockPollInterval = 50 * time.Millisecond
)

// WithLock runs fn while holding ~/.recommitrc.lock, so concurrent
// "recommit config set" calls cannot lose each other's edits.
func WithLock(fn func() error) error {
	path, err := lockPath()
	if err != nil {
		return err
	}

	if err := acquireLock(path); err != nil {
		return err
	}
	defer releaseLock(path)

	return fn()
}

func lockPath() (string, error) {
	configPath, err := paths.ConfigFilePath()
	if err != nil {
		return "", err
	}
	return configPath + ".lock", nil
}

// acquireLock creates the lock file exclusively and writes our pid into it.
// A lock older than staleLockAge is assumed abandoned and removed.
func acquireLock(path string) error {
	deadline := time.Now().Add(lockTimeout)

	for {
		if info, err := os.Stat(path); err == nil && time.Since(info.ModTime()) > staleLockAge {
			log.Warn("config: removing stale lock %s held by pid %s", path, lockOwner(path))
			_ = os.Remove(path)
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			return f.Close()
		}
		if !os.IsExist(err) {
			return fmt.Errorf("config: create lock %s: %w", path, err)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s is held by pid %s", ErrLockTimeout, path, lockOwner(path))
		}
		time.Sleep(lockPollInterval)
	}
}

// releaseLock removes the lock only if this process still owns it.
func releaseLock(path string) {
	if lockOwner(path) != strconv.Itoa(os.Getpid()) {
		log.Warn("config: lock %s was taken over by another process", path)
		return
	}
	_ = os.Remove(path)
}

func lockOwner(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(data))
}
