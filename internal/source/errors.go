package source

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	ErrAuthentication   = errors.New("authentication rejected")
	ErrTransientNetwork = errors.New("transient network failure")
	ErrProvider         = errors.New("provider error")
	ErrInvalidPage      = errors.New("invalid page request")
)

// Error describes a failed provider request.
type Error struct {
	Kind       error
	Source     string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindForStatus maps a non-2xx HTTP status onto an error kind.
func KindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrAuthentication
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return ErrTransientNetwork
	case status >= 500:
		return ErrTransientNetwork
	default:
		return ErrProvider
	}
}

// IsSourceError reports whether err is one of the provider failure kinds.
func IsSourceError(err error) bool {
	return errors.Is(err, ErrAuthentication) ||
		errors.Is(err, ErrTransientNetwork) ||
		errors.Is(err, ErrProvider) ||
		errors.Is(err, ErrInvalidPage)
}

func invalidPageMessage(page, perPage int) string {
	return fmt.Sprintf("page=%d per_page=%d", page, perPage)
}
