// Package portfolio groups the four entities as one unit: full-store
// snapshots for copying between stores, and change events.
package portfolio

import (
	"context"

	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/internal/domain/work"
)

// Snapshot holds every row of a store, each slice in id order.
type Snapshot struct {
	Profiles []*profile.Profile
	Skills   []*skill.Skill
	Projects []*project.Project
	Work     []*work.Work
}

type Counts struct {
	Profiles int
	Skills   int
	Projects int
	Work     int
}

func (c Counts) Total() int {
	return c.Profiles + c.Skills + c.Projects + c.Work
}

func (s *Snapshot) Counts() Counts {
	return Counts{
		Profiles: len(s.Profiles),
		Skills:   len(s.Skills),
		Projects: len(s.Projects),
		Work:     len(s.Work),
	}
}

// Source reads a whole store inside one read transaction.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	Close() error
}

// Target is a store that can receive a Snapshot with its ids preserved.
type Target interface {
	EnsureSchema(ctx context.Context) error
	// Reset deletes work, projects, skills and profiles, in that order, and commits.
	Reset(ctx context.Context) error
	Counts(ctx context.Context) (Counts, error)
	// Load inserts the snapshot in a single transaction.
	Load(ctx context.Context, s *Snapshot) error
	// ResyncSequences moves id generators past the highest copied id.
	ResyncSequences(ctx context.Context) error
	Close() error
}
