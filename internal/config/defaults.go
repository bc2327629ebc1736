package config

import (
	"os"
	"strings"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/paths"
)

// Defaults holds values computed at runtime. Static defaults live in
// domain.ConfigKeys.
var Defaults = map[string]func() string{
	"db_path": func() string { return paths.DBPath() },
}

// Origin tells where a resolved value came from.
type Origin int

const (
	OriginNone Origin = iota
	OriginDefault
	OriginFile
	OriginEnv
)

func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginFile:
		return "file"
	case OriginEnv:
		return "env"
	default:
		return "unset"
	}
}

// Value is a resolved configuration value.
type Value struct {
	Key    domain.ConfigKey
	Value  string
	Origin Origin
}

// DefaultValue returns the built-in default for key.
func DefaultValue(key string) string {
	if fn, ok := Defaults[key]; ok {
		return fn()
	}
	if k, ok := domain.GetConfigKey(key); ok {
		return k.Default
	}
	return ""
}

// envValue returns the environment override for key. Empty variables count as unset.
func envValue(key string) (string, bool) {
	k, ok := domain.GetConfigKey(key)
	if !ok || k.Env == "" {
		return "", false
	}
	v := strings.TrimSpace(os.Getenv(k.Env))
	return v, v != ""
}

// fileValues reads and parses the config file. Errors leave the map empty.
func fileValues() map[string]string {
	lines, err := ReadLines()
	if err != nil {
		return map[string]string{}
	}
	cfg, err := Parse(lines)
	if err != nil {
		return map[string]string{}
	}
	return cfg
}

// resolve applies the precedence environment > file > default.
func resolve(key string, file map[string]string) (string, Origin) {
	if v, ok := envValue(key); ok {
		return v, OriginEnv
	}
	if v, ok := file[key]; ok {
		return v, OriginFile
	}
	if v := DefaultValue(key); v != "" {
		return v, OriginDefault
	}
	return "", OriginNone
}

// Get returns the effective value for a config key.
// The boolean is false when no source provides a value.
func Get(key string) (string, bool) {
	v, origin := resolve(key, fileValues())
	return v, origin != OriginNone
}

// GetAll returns the effective value of every known key that has one,
// plus unknown keys found in the file.
func GetAll() (map[string]string, error) {
	file := fileValues()
	result := make(map[string]string, len(domain.ConfigKeys))

	for key, value := range file {
		if !domain.IsValidConfigKey(key) {
			result[key] = value
		}
	}

	for _, k := range domain.ConfigKeys {
		if v, origin := resolve(k.Name, file); origin != OriginNone {
			result[k.Name] = v
		}
	}

	return result, nil
}

// List returns every known key in display order with its effective value.
func List() []Value {
	file := fileValues()
	out := make([]Value, 0, len(domain.ConfigKeys))
	for _, k := range domain.ConfigKeys {
		v, origin := resolve(k.Name, file)
		out = append(out, Value{Key: k, Value: v, Origin: origin})
	}
	return out
}
