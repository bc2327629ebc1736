package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsedFlags_Has(t *testing.T) {
	tests := []struct {
		name     string
		flags    []string
		check    string
		expected bool
	}{
		{name: "flag present", flags: []string{"--dry-run"}, check: "--dry-run", expected: true},
		{name: "flag not present", flags: []string{"--no-push"}, check: "--dry-run", expected: false},
		{name: "empty flags", flags: nil, check: "--dry-run", expected: false},
		{name: "flag with value not detected as boolean", flags: []string{"--limit=5"}, check: "--limit", expected: false},
		{name: "among several flags", flags: []string{"--verbose", "--limit=2", "--no-push"}, check: "--no-push", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, NewParsedFlags(tt.flags).Has(tt.check))
		})
	}
}

func TestParsedFlags_Lookup(t *testing.T) {
	tests := []struct {
		name      string
		flags     []string
		lookup    string
		wantValue string
		wantFound bool
	}{
		{name: "value present", flags: []string{"--source=gitlab"}, lookup: "--source", wantValue: "gitlab", wantFound: true},
		{name: "absent", flags: []string{"--verbose"}, lookup: "--source", wantFound: false},
		{name: "empty value", flags: []string{"--limit="}, lookup: "--limit", wantValue: "", wantFound: true},
		{name: "bare flag", flags: []string{"--limit"}, lookup: "--limit", wantValue: "", wantFound: true},
		{name: "value containing equals", flags: []string{"--pager=less -R --x=1"}, lookup: "--pager", wantValue: "less -R --x=1", wantFound: true},
		{name: "prefix of another flag", flags: []string{"--limit-all=1"}, lookup: "--limit", wantFound: false},
		{name: "first occurrence wins", flags: []string{"--limit=1", "--limit=2"}, lookup: "--limit", wantValue: "1", wantFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, found := NewParsedFlags(tt.flags).Lookup(tt.lookup)
			require.Equal(t, tt.wantFound, found)
			require.Equal(t, tt.wantValue, value)
		})
	}
}

func TestParsedFlags_String(t *testing.T) {
	tests := []struct {
		name       string
		flags      []string
		lookup     string
		defaultVal string
		expected   string
	}{
		{name: "flag present with value", flags: []string{"--format=json"}, lookup: "--format", defaultVal: "text", expected: "json"},
		{name: "absent returns default", flags: []string{"--verbose"}, lookup: "--format", defaultVal: "text", expected: "text"},
		{name: "empty value returns default", flags: []string{"--format="}, lookup: "--format", defaultVal: "text", expected: "text"},
		{name: "value with spaces", flags: []string{"--pager=less -FRSX"}, lookup: "--pager", defaultVal: "", expected: "less -FRSX"},
		{name: "space separated form is not read", flags: []string{"--format", "json"}, lookup: "--format", defaultVal: "text", expected: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, NewParsedFlags(tt.flags).String(tt.lookup, tt.defaultVal))
		})
	}
}

func TestParsedFlags_Raw(t *testing.T) {
	require.Nil(t, NewParsedFlags(nil).Raw())
	require.Equal(t, []string{"--dry-run", "--limit=3"}, NewParsedFlags([]string{"--dry-run", "--limit=3"}).Raw())
}
