package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/log"
	"github.com/footprint-tools/recommit/internal/timezone"
	"github.com/footprint-tools/recommit/internal/usage"
)

// Settings is the typed configuration of one process.
type Settings struct {
	RepositoryPath string
	TimezoneName   string
	Location       *time.Location
	MarkerFile     string
	Push           bool

	GitLabURL       string
	GitLabUsername  string
	GitLabToken     string
	GitLabRateLimit float64

	PageSize    int
	RecordLimit int

	DBPath string

	EnableLog    bool
	LogLevel     log.Level
	LogMaxSizeMB int
	LogBackups   int
	MetricsFile  string

	Pager string
}

// Load resolves every key (environment > ~/.recommitrc > defaults) into Settings.
// Malformed values and unknown timezones are reported as *usage.Error.
func Load() (Settings, error) {
	values, err := GetAll()
	if err != nil {
		return Settings{}, err
	}
	return FromValues(values)
}

// FromValues builds Settings from resolved key/value pairs.
func FromValues(values map[string]string) (Settings, error) {
	get := func(key string) string {
		if v, ok := values[key]; ok {
			return strings.TrimSpace(v)
		}
		return DefaultValue(key)
	}

	s := Settings{
		RepositoryPath: expandHome(get("repository_path")),
		TimezoneName:   get("timezone"),
		MarkerFile:     get("marker_file"),
		GitLabURL:      get("gitlab_url"),
		GitLabUsername: get("gitlab_username"),
		GitLabToken:    get("gitlab_api_key"),
		DBPath:         expandHome(get("db_path")),
		MetricsFile:    expandHome(get("metrics_file")),
		Pager:          get("pager"),
	}

	var err error

	if s.Push, err = parseBool("push", get("push")); err != nil {
		return Settings{}, err
	}
	if s.EnableLog, err = parseBool("enable_log", get("enable_log")); err != nil {
		return Settings{}, err
	}
	if s.LogLevel, err = parseLevel("log_level", get("log_level")); err != nil {
		return Settings{}, err
	}
	if s.LogMaxSizeMB, err = parseInt("log_max_size_mb", get("log_max_size_mb"), 1); err != nil {
		return Settings{}, err
	}
	if s.LogBackups, err = parseInt("log_backups", get("log_backups"), 0); err != nil {
		return Settings{}, err
	}
	if s.GitLabRateLimit, err = parseFloat("gitlab_rate_limit", get("gitlab_rate_limit")); err != nil {
		return Settings{}, err
	}
	if s.PageSize, err = parseInt("page_size", get("page_size"), 1); err != nil {
		return Settings{}, err
	}
	if s.RecordLimit, err = parseInt("record_limit", get("record_limit"), 0); err != nil {
		return Settings{}, err
	}

	loc, err := timezone.Load(s.TimezoneName)
	if err != nil {
		var unknown *timezone.UnknownError
		if errors.As(err, &unknown) {
			return Settings{}, usage.InvalidTimezone(unknown.Name, unknown.Suggestions, err)
		}
		return Settings{}, err
	}
	s.Location = loc

	return s, nil
}

// Missing returns the required keys that have no value, in display order.
func (s Settings) Missing() []string {
	have := map[string]string{
		"repository_path": s.RepositoryPath,
		"gitlab_username": s.GitLabUsername,
		"gitlab_api_key":  s.GitLabToken,
	}

	var missing []string
	for _, k := range domain.ConfigKeys {
		if !k.Required {
			continue
		}
		if have[k.Name] == "" {
			missing = append(missing, k.Name)
		}
	}
	return missing
}

// RequireComplete fails with usage.MissingConfig if any required key other
// than the exempt ones is empty.
func (s Settings) RequireComplete(exempt ...string) error {
	missing := slices.DeleteFunc(s.Missing(), func(key string) bool {
		return slices.Contains(exempt, key)
	})
	if len(missing) > 0 {
		return usage.MissingConfig(missing...)
	}
	return nil
}

func parseBool(key, v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, usage.InvalidConfigValue(key, v, errors.New("expected true or false"))
}

func parseLevel(key, v string) (log.Level, error) {
	level, err := log.ParseLevel(v)
	if err != nil {
		return 0, usage.InvalidConfigValue(key, v, errors.New("expected debug, info, warn or error"))
	}
	return level, nil
}

func parseInt(key, v string, minValue int) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, usage.InvalidConfigValue(key, v, errors.New("expected a whole number"))
	}
	if n < minValue {
		return 0, usage.InvalidConfigValue(key, v, fmt.Errorf("must be at least %d", minValue))
	}
	return n, nil
}

func parseFloat(key, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, usage.InvalidConfigValue(key, v, errors.New("expected a number"))
	}
	if f < 0 {
		return 0, usage.InvalidConfigValue(key, v, errors.New("must not be negative"))
	}
	return f, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) string {
	if p == "" || (p != "~" && !strings.HasPrefix(p, "~/")) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// ValidateValue reports whether value is acceptable for key, using the same
// parsing as Load.
func ValidateValue(key, value string) error {
	_, err := FromValues(map[string]string{key: value})
	return err
}
