package usage

import "fmt"

// InvalidFlag is returned when a flag is not valid in the current context.
func InvalidFlag(flag string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("recommit: invalid flag '%s'", flag),
	}
}

// InvalidFlagValue is returned when a flag carries a value that cannot be used.
func InvalidFlagValue(flag, value, want string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("recommit: invalid value '%s' for %s (expected %s)", value, flag, want),
	}
}
