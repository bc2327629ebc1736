package usage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"invalid flag", InvalidFlag("--nope"), 2},
		{"missing argument", MissingArgument("key"), 2},
		{"unknown command", UnknownCommand("rnu"), 1},
		{"missing config", MissingConfig("gitlab_username"), 2},
		{"invalid timezone", InvalidTimezone("Mars/Base", nil, nil), 2},
		{"git not installed", GitNotInstalled(), 1},
		{"storage", StorageUnavailable("/x", errors.New("disk")), 1},
		{"explicit override", &Error{Kind: ErrInvalidFlag, ExitCode: 7}, 7},
		{"unknown kind", &Error{Kind: ErrorKind(99)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.GetExitCode())
		})
	}
}

func TestUnknownCommand_Suggestions(t *testing.T) {
	err := UnknownCommand("rnu", "run")
	require.Contains(t, err.Error(), "'rnu' is not a recommit command")
	require.Contains(t, err.Error(), "\trun")

	plain := UnknownCommand("zzz")
	require.NotContains(t, plain.Error(), "most similar")
}

func TestMissingConfig_ListsKeys(t *testing.T) {
	err := MissingConfig("gitlab_username", "gitlab_api_key")
	require.Contains(t, err.Error(), "gitlab_username, gitlab_api_key")
}

func TestInvalidTimezone_Unwrap(t *testing.T) {
	cause := errors.New("unknown time zone Europe/Berln")
	err := InvalidTimezone("Europe/Berln", []string{"Europe/Berlin"}, cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "Europe/Berlin")
}
