package config

import "strings"

// Set replaces the line defining key, or appends one. The boolean reports
// whether an existing line was replaced.
func Set(lines []string, key, value string) ([]string, bool) {
	entry := key + "=" + quote(value)

	for i, line := range lines {
		if lineKey(line) == key {
			lines[i] = entry
			return lines, true
		}
	}

	lines = append(lines, entry)
	return lines, false
}

// Unset drops every line defining key. The boolean reports whether one was found.
func Unset(lines []string, key string) ([]string, bool) {
	var out []string
	removed := false

	for _, line := range lines {
		if lineKey(line) == key {
			removed = true
			continue
		}
		out = append(out, line)
	}

	return out, removed
}

// lineKey returns the key defined by line, or "" for blanks, comments and
// malformed lines.
func lineKey(line string) string {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}

	key, _, ok := strings.Cut(trimmed, "=")
	if !ok {
		return ""
	}
	return strings.TrimSpace(key)
}
