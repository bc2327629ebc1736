package usage

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrInvalidFlag
	ErrMissingArgument
	ErrUnknownCommand
	ErrInvalidRepo
	ErrGitNotInstalled
	ErrInvalidConfigKey
	ErrInvalidConfigValue
	ErrMissingConfig
	ErrInvalidTimezone
	ErrFailedConfigPath
	ErrStorage
)

// Exit codes:
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - Unknown command
//	  - Invalid repository
//	  - Git not installed
//	  - Failed config path
//	  - Storage unavailable
//
//	Exit 2: User input errors
//	  - Invalid flag
//	  - Missing argument
//	  - Invalid config key or value
//	  - Missing required config
//	  - Invalid timezone
var exitCodes = map[ErrorKind]int{
	ErrUnknown:            1,
	ErrInvalidFlag:        2,
	ErrMissingArgument:    2,
	ErrUnknownCommand:     1,
	ErrInvalidRepo:        1,
	ErrGitNotInstalled:    1,
	ErrInvalidConfigKey:   2,
	ErrInvalidConfigValue: 2,
	ErrMissingConfig:      2,
	ErrInvalidTimezone:    2,
	ErrFailedConfigPath:   1,
	ErrStorage:            1,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind     ErrorKind
	Message  string
	ExitCode int // overrides the code derived from Kind when non-zero
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
