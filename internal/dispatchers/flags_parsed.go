package dispatchers

import "strings"

// ParsedFlags provides typed access to command-line flags.
//
// Value flags are stored as "--flag=value"; cmd/recommit rewrites the
// "--flag value" form before dispatch, so lookups never look ahead.
type ParsedFlags struct {
	raw []string
}

// NewParsedFlags creates a ParsedFlags from a slice of flag strings.
func NewParsedFlags(flags []string) *ParsedFlags {
	return &ParsedFlags{raw: flags}
}

// Raw returns the underlying flag strings.
func (f *ParsedFlags) Raw() []string {
	return f.raw
}

// Has returns true if the flag is present without a value (boolean flags).
func (f *ParsedFlags) Has(name string) bool {
	for _, flag := range f.raw {
		if flag == name {
			return true
		}
	}
	return false
}

// Lookup returns the value of the first occurrence of name. A bare flag
// with no "=value" is reported as present with an empty value.
func (f *ParsedFlags) Lookup(name string) (string, bool) {
	for _, flag := range f.raw {
		key, value, _ := strings.Cut(flag, "=")
		if key == name {
			return value, true
		}
	}
	return "", false
}

// String returns the value of a flag, or defaultVal if it is absent or empty.
func (f *ParsedFlags) String(name, defaultVal string) string {
	if v, ok := f.Lookup(name); ok && v != "" {
		return v
	}
	return defaultVal
}
