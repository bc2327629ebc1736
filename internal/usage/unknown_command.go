package usage

import (
	"fmt"
	"strings"
)

// UnknownCommand is returned for a command that does not exist. Close matches
// are listed when available.
func UnknownCommand(command string, suggestions ...string) *Error {
	msg := fmt.Sprintf("recommit: '%s' is not a recommit command. See 'recommit --help'.", command)
	if len(suggestions) > 0 {
		msg += "\n\nThe most similar commands are:\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &Error{
		Kind:    ErrUnknownCommand,
		Message: msg,
	}
}
