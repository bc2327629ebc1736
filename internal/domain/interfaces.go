package domain

import (
	"context"
	"io"
)

// Ledger is the durable seen-record index and append-only commit log.
type Ledger interface {
	// Open acquires the underlying storage handle.
	Open() error

	// Close releases the storage handle. Closing twice is reported, not fatal.
	Close() error

	// Exists reports whether a record with this id was persisted.
	// An empty source matches any source.
	Exists(id, source string) (bool, error)

	// Append persists a record. It never overwrites an existing key.
	Append(record CommitRecord) error

	// MaxIteration returns the highest iteration stored for an id.
	MaxIteration(id string) (int, bool, error)
}

// Materializer turns a record into a version-control commit.
type Materializer interface {
	// Materialize writes the marker file, commits it and returns the commit hash.
	Materialize(ctx context.Context, record CommitRecord) (string, error)

	// Push publishes accumulated commits to the remote.
	Push(ctx context.Context) error

	// Unpushed counts local commits the remote does not have yet.
	Unpushed(ctx context.Context) (int, error)
}

// Logger defines logging operations.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// OutputWriter defines output operations.
type OutputWriter interface {
	io.Writer

	// Printf formats and prints to the output.
	Printf(format string, args ...any) (int, error)

	// Println prints a line to the output.
	Println(args ...any) (int, error)

	// Pager displays content through a pager if appropriate.
	Pager(content string)
}
