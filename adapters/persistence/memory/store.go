// Package memory is an in-process portfolio store with the same observable
// behavior as the PostgreSQL repositories. It backs demo mode and tests.
package memory

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/search"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/internal/domain/work"
)

type Store struct {
	mu sync.RWMutex

	profiles []*profile.Profile
	skills   []*skill.Skill
	projects []*project.Project
	work     []*work.Work

	// last id handed out per table; ids are never reused
	seq map[string]int64
}

func NewStore() *Store {
	return &Store{seq: make(map[string]int64)}
}

func (s *Store) Profiles() profile.Repository { return &profileRepo{s} }
func (s *Store) Skills() skill.Repository     { return &skillRepo{s} }
func (s *Store) Projects() project.Repository { return &projectRepo{s} }
func (s *Store) Work() work.Repository        { return &workRepo{s} }
func (s *Store) Search() search.Repository    { return &searchRepo{s} }

// next must be called with mu held.
func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return slices.Clone(items[offset:end])
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func copyProfile(p *profile.Profile) *profile.Profile {
	c := *p
	c.Github = copyPtr(p.Github)
	c.Linkedin = copyPtr(p.Linkedin)
	return &c
}

func copySkill(sk *skill.Skill) *skill.Skill {
	c := *sk
	return &c
}

func copyProject(p *project.Project) *project.Project {
	c := *p
	if p.Links != nil {
		c.Links = maps.Clone(p.Links)
	}
	return &c
}

func copyWork(w *work.Work) *work.Work {
	c := *w
	c.EndDate = copyPtr(w.EndDate)
	c.Description = copyPtr(w.Description)
	return &c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func mapSlice[T any](in []*T, fn func(*T) *T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
