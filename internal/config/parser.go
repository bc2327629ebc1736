package config

import (
	"fmt"
	"strings"
)

// Parse turns config file lines into a key/value map.
//
// Blank lines and lines starting with # are skipped. Each remaining line must
// be key=value; the value is everything after the first "=". Matching single
// or double quotes around a value are removed. Later keys override earlier ones.
func Parse(lines []string) (map[string]string, error) {
	cfg := make(map[string]string)

	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, fmt.Errorf("config: line %d: expected key=value, got %q", i+1, trimmed)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("config: line %d: empty key", i+1)
		}

		cfg[key] = unquote(strings.TrimSpace(value))
	}

	return cfg, nil
}

func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' || first == '\'') && first == last {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// quote wraps values containing spaces so they survive Parse unchanged.
func quote(v string) string {
	if strings.ContainsAny(v, " \t") || v != strings.TrimSpace(v) {
		return "\"" + v + "\""
	}
	return v
}
