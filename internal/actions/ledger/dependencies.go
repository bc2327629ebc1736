package ledger

import (
	"fmt"
	"time"

	"github.com/footprint-tools/recommit/internal/app"
	"github.com/footprint-tools/recommit/internal/config"
	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/git"
	"github.com/footprint-tools/recommit/internal/store"
	"github.com/footprint-tools/recommit/internal/ui"
)

// Reader is the read side of the ledger used by log and status.
type Reader interface {
	List(filter store.RecordFilter) ([]domain.CommitRecord, error)
	Stats() ([]store.SourceStats, error)
	RecentRuns(limit int) ([]store.Run, error)
	SchemaVersion() (int, error)
	Close() error
}

type Deps struct {
	LoadSettings func() (config.Settings, error)
	OpenLedger   func(config.Settings) (Reader, error)

	// git
	GitIsAvailable func() bool
	RepoRoot       func(string) (string, error)
	HeadCommit     func(string) (string, error)
	CurrentBranch  func(string) (string, error)

	// io
	Printf  func(string, ...any) (int, error)
	Println func(...any) (int, error)
	Pager   func(string)

	Now func() time.Time
}

func DefaultDeps() Deps {
	return Deps{
		LoadSettings: config.Load,
		OpenLedger: func(s config.Settings) (Reader, error) {
			return app.OpenStore(s)
		},

		GitIsAvailable: git.IsAvailable,
		RepoRoot:       git.RepoRoot,
		HeadCommit:     git.HeadCommit,
		CurrentBranch:  git.CurrentBranch,

		Printf:  fmt.Printf,
		Println: fmt.Println,
		Pager:   ui.Pager,

		Now: time.Now,
	}
}
