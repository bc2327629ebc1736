// Package source defines the capability every event provider implements.
package source

import (
	"context"
	"time"
)

// DateLayout is the wire format of the Before and After filters.
const DateLayout = "2006-01-02"

// Event is a raw provider record. It is never modified after fetching.
type Event struct {
	ID          string
	CreatedAt   time.Time
	ProjectID   int64 // 0 when the event has no project
	Action      string
	TargetType  string
	TargetTitle string
	Author      string
	Ref         string
	CommitCount int
}

// Filters narrows the events a provider returns. Zero values are not sent.
type Filters struct {
	Action     string
	TargetType string
	Before     time.Time
	After      time.Time
	Sort       string
}

// Client retrieves one page of events from a provider.
//
// Pages are 1-based. An empty slice with a nil error means there is no more data.
// Providers are expected to return events newest first.
type Client interface {
	FetchPage(ctx context.Context, page, perPage int, filters Filters) ([]Event, error)

	// Tag identifies the provider, e.g. "gitlab".
	Tag() string
}

// ValidatePage rejects page arguments no provider accepts.
func ValidatePage(page, perPage int) error {
	if page < 1 || perPage < 1 {
		return &Error{Kind: ErrInvalidPage, Message: invalidPageMessage(page, perPage)}
	}
	return nil
}
