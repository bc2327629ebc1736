package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "recommit"

// AppDataDir returns the application data directory for the ledger and logs.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)

	_ = os.MkdirAll(path, 0700)

	return path
}

// ConfigFilePath returns the path of the user configuration file (~/.recommitrc).
func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".recommitrc"), nil
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "recommit.log")
}

// DBPath returns the default location of the commit ledger.
func DBPath() string {
	return filepath.Join(AppDataDir(), "commits.db")
}
