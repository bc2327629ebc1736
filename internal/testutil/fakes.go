package testutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/source"
)

// FakeSource serves pages built from a newest-first list of ids.
// Event i is created Base minus i hours.
type FakeSource struct {
	Name     string
	IDs      []string
	PageSize int // overrides the requested page size when > 0
	Base     time.Time
	Err      error
	Requests int
}

func (s *FakeSource) FetchPage(_ context.Context, page, perPage int, _ source.Filters) ([]source.Event, error) {
	s.Requests++
	if s.Err != nil {
		return nil, s.Err
	}
	size := perPage
	if s.PageSize > 0 {
		size = s.PageSize
	}
	start := (page - 1) * size
	if start >= len(s.IDs) {
		return nil, nil
	}
	end := min(start+size, len(s.IDs))

	var out []source.Event
	for i := start; i < end; i++ {
		out = append(out, source.Event{
			ID:        s.IDs[i],
			CreatedAt: s.Base.Add(-time.Duration(i) * time.Hour),
			ProjectID: 1,
		})
	}
	return out, nil
}

func (s *FakeSource) Tag() string { return s.Name }

// FakeMaterializer hands out sequential hashes. A successful push marks
// every commit so far as published.
type FakeMaterializer struct {
	Committed []string
	FailIDs   map[string]bool
	Pushes    int
	PushErr   error
	Published int
}

func (m *FakeMaterializer) Materialize(_ context.Context, rec domain.CommitRecord) (string, error) {
	if m.FailIDs[rec.ID] {
		return "", errors.New("index.lock exists")
	}
	m.Committed = append(m.Committed, rec.ID)
	return fmt.Sprintf("%040x", len(m.Committed)), nil
}

func (m *FakeMaterializer) Push(context.Context) error {
	m.Pushes++
	if m.PushErr != nil {
		return m.PushErr
	}
	m.Published = len(m.Committed)
	return nil
}

func (m *FakeMaterializer) Unpushed(context.Context) (int, error) {
	return len(m.Committed) - m.Published, nil
}
