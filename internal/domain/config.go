package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Env         string // environment variable that overrides the file value
	Default     string
	Description string
	Section     string // Section for grouping in config list
	Secret      bool   // Secret values are masked in config list
	Required    bool   // Required keys must resolve to a non-empty value before a run
}

// ConfigKeys defines all available configuration keys.
// Order determines display order in `recommit config list`.
var ConfigKeys = []ConfigKey{
	// Repository
	{
		Name:        "repository_path",
		Env:         "REPOSITORY_PATH",
		Description: "Path to the git repository that receives the commits",
		Section:     "Repository",
		Required:    true,
	},
	{
		Name:        "timezone",
		Env:         "TIMEZONE",
		Default:     "UTC",
		Description: "IANA timezone used for commit dates (e.g. Europe/Berlin)",
		Section:     "Repository",
	},
	{
		Name:        "marker_file",
		Env:         "MARKER_FILE",
		Default:     "meta",
		Description: "File inside the repository that stores the last event id",
		Section:     "Repository",
	},
	{
		Name:        "push",
		Env:         "PUSH",
		Default:     "true",
		Description: "Push to origin after a run (true/false)",
		Section:     "Repository",
	},
	// GitLab
	{
		Name:        "gitlab_url",
		Env:         "GITLAB_URL",
		Default:     "https://gitlab.com",
		Description: "Base URL of the GitLab instance",
		Section:     "GitLab",
	},
	{
		Name:        "gitlab_username",
		Env:         "GITLAB_USERNAME",
		Description: "GitLab account whose events are mirrored",
		Section:     "GitLab",
		Required:    true,
	},
	{
		Name:        "gitlab_api_key",
		Env:         "GITLAB_API_KEY",
		Description: "GitLab personal access token (read_api)",
		Section:     "GitLab",
		Secret:      true,
		Required:    true,
	},
	{
		Name:        "gitlab_rate_limit",
		Env:         "GITLAB_RATE_LIMIT",
		Default:     "5",
		Description: "Maximum GitLab requests per second",
		Section:     "GitLab",
	},
	// Fetching
	{
		Name:        "page_size",
		Env:         "PAGE_SIZE",
		Default:     "50",
		Description: "Events requested per page",
		Section:     "Fetching",
	},
	{
		Name:        "record_limit",
		Env:         "RECORD_LIMIT",
		Default:     "0",
		Description: "Maximum records materialized per run (0 = no limit)",
		Section:     "Fetching",
	},
	// Storage
	{
		Name:        "db_path",
		Env:         "DB_PATH",
		Description: "Path to the commit ledger database",
		Section:     "Storage",
	},
	// Logging
	{
		Name:        "enable_log",
		Env:         "ENABLE_LOG",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	{
		Name:        "log_level",
		Env:         "LOG_LEVEL",
		Default:     "debug",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
	},
	{
		Name:        "log_max_size_mb",
		Env:         "LOG_MAX_SIZE_MB",
		Default:     "10",
		Description: "Rotate the log file once it exceeds this many megabytes",
		Section:     "Logging",
	},
	{
		Name:        "log_backups",
		Env:         "LOG_BACKUPS",
		Default:     "25",
		Description: "Rotated log files to keep (0 keeps all)",
		Section:     "Logging",
	},
	{
		Name:        "metrics_file",
		Env:         "METRICS_FILE",
		Description: "Write Prometheus metrics to this file after each run",
		Section:     "Logging",
	},
	// Display
	{
		Name:        "pager",
		Env:         "PAGER_CMD",
		Default:     "less -FRSX",
		Description: "Pager command for long output",
		Section:     "Display",
	},
	{
		Name:        "display_date",
		Env:         "DISPLAY_DATE",
		Default:     "yyyy-mm-dd",
		Description: "Date format in log and status: yyyy-mm-dd, dd/mm/yyyy, mm/dd/yyyy or a Go layout",
		Section:     "Display",
	},
	{
		Name:        "display_time",
		Env:         "DISPLAY_TIME",
		Default:     "24h",
		Description: "Time format in log and status: 24h or 12h",
		Section:     "Display",
	},
}

// configKeyMap is a lookup map for configuration keys.
var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// GetConfigKey returns the ConfigKey for a given name.
func GetConfigKey(name string) (ConfigKey, bool) {
	key, ok := configKeyMap[name]
	return key, ok
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// ConfigSections returns the ordered list of section names.
func ConfigSections() []string {
	return []string{"Repository", "GitLab", "Fetching", "Storage", "Logging", "Display"}
}

// ConfigKeyNames returns the names of all keys in display order.
func ConfigKeyNames() []string {
	names := make([]string, len(ConfigKeys))
	for i, k := range ConfigKeys {
		names[i] = k.Name
	}
	return names
}
