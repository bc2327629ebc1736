package usage

import (
	"fmt"
	"strings"
)

// InvalidConfigKey is returned for keys recommit does not know.
func InvalidConfigKey(key string, suggestions ...string) *Error {
	msg := fmt.Sprintf("recommit: unknown config key '%s'. See 'recommit config list'.", key)
	if len(suggestions) > 0 {
		msg += "\n\nDid you mean:\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &Error{
		Kind:    ErrInvalidConfigKey,
		Message: msg,
	}
}

// InvalidConfigValue is returned when a config value cannot be parsed.
func InvalidConfigValue(key, value string, err error) *Error {
	return &Error{
		Kind:    ErrInvalidConfigValue,
		Message: fmt.Sprintf("recommit: invalid value '%s' for %s: %v", value, key, err),
		Err:     err,
	}
}

// MissingConfig is returned when required keys have no value.
func MissingConfig(keys ...string) *Error {
	return &Error{
		Kind: ErrMissingConfig,
		Message: fmt.Sprintf(
			"recommit: missing required configuration: %s\nSet them with 'recommit config set <key> <value>' or the matching environment variables.",
			strings.Join(keys, ", "),
		),
	}
}

// InvalidTimezone is returned for an unknown timezone name.
func InvalidTimezone(name string, suggestions []string, err error) *Error {
	msg := fmt.Sprintf("recommit: unknown timezone '%s'", name)
	if len(suggestions) > 0 {
		msg += "\n\nDid you mean any of these?\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &Error{
		Kind:    ErrInvalidTimezone,
		Message: msg,
		Err:     err,
	}
}

// FailedConfigPath is returned when the config file location cannot be resolved.
func FailedConfigPath(err error) *Error {
	return &Error{
		Kind:    ErrFailedConfigPath,
		Message: fmt.Sprintf("recommit: cannot locate config file: %v", err),
		Err:     err,
	}
}
