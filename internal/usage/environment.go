package usage

import "fmt"

// GitNotInstalled is returned when git cannot be found on PATH.
func GitNotInstalled() *Error {
	return &Error{
		Kind:    ErrGitNotInstalled,
		Message: "recommit: git is not installed or not in PATH",
	}
}

// InvalidRepo is returned when repository_path is not a git work tree.
func InvalidRepo(path string, err error) *Error {
	return &Error{
		Kind:    ErrInvalidRepo,
		Message: fmt.Sprintf("recommit: '%s' is not a git repository", path),
		Err:     err,
	}
}

// StorageUnavailable is returned when the ledger cannot be opened.
func StorageUnavailable(path string, err error) *Error {
	return &Error{
		Kind:    ErrStorage,
		Message: fmt.Sprintf("recommit: cannot open ledger at %s: %v", path, err),
		Err:     err,
	}
}
