package config

import (
	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/suggest"
	"github.com/footprint-tools/recommit/internal/ui"
	"github.com/footprint-tools/recommit/internal/usage"
)

const secretMask = "********"

// lookupKey returns the key definition or an error suggesting similar names.
func lookupKey(name string) (domain.ConfigKey, error) {
	key, ok := domain.GetConfigKey(name)
	if !ok {
		return domain.ConfigKey{}, usage.InvalidConfigKey(name, suggest.Closest(name, domain.ConfigKeyNames(), 3, 3)...)
	}
	return key, nil
}

// display returns the value as it may be shown on a terminal.
func display(key domain.ConfigKey, value string) string {
	if key.Secret && value != "" {
		return secretMask
	}
	return value
}

func pager(content string) {
	ui.Pager(content)
}
