package memory

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/search"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/internal/domain/work"
	"github.com/khoahotran/me-api/pkg/apperror"
)

func notFound(resource string, id int64) error {
	return apperror.NewNotFound(resource, strconv.FormatInt(id, 10))
}

type profileRepo struct{ s *Store }

func (r *profileRepo) Create(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.profiles) > 0 {
		return apperror.NewAlreadyExists("profile")
	}
	p.ID = r.s.next("profiles")
	r.s.profiles = append(r.s.profiles, copyProfile(p))
	return nil
}

func (r *profileRepo) First(_ context.Context) (*profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if len(r.s.profiles) == 0 {
		return nil, apperror.NewNotFound("profile", "")
	}
	return copyProfile(r.s.profiles[0]), nil
}

func (r *profileRepo) Update(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.profiles, func(x *profile.Profile) bool { return x.ID == p.ID })
	if i < 0 {
		return notFound("profile", p.ID)
	}
	r.s.profiles[i] = copyProfile(p)
	return nil
}

func (r *profileRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.profiles, func(x *profile.Profile) bool { return x.ID == id })
	if i < 0 {
		return notFound("profile", id)
	}
	r.s.profiles = slices.Delete(r.s.profiles, i, i+1)
	r.s.skills = slices.DeleteFunc(r.s.skills, func(x *skill.Skill) bool { return x.ProfileID == id })
	r.s.projects = slices.DeleteFunc(r.s.projects, func(x *project.Project) bool { return x.ProfileID == id })
	r.s.work = slices.DeleteFunc(r.s.work, func(x *work.Work) bool { return x.ProfileID == id })
	return nil
}

type skillRepo struct{ s *Store }

func (r *skillRepo) Create(_ context.Context, sk *skill.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sk.ID = r.s.next("skills")
	r.s.skills = append(r.s.skills, copySkill(sk))
	return nil
}

func (r *skillRepo) FindByID(_ context.Context, id int64) (*skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sk := range r.s.skills {
		if sk.ID == id {
			return copySkill(sk), nil
		}
	}
	return nil, notFound("skill", id)
}

func (r *skillRepo) List(_ context.Context, p page.Page) ([]*skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mapSlice(window(r.s.skills, p.Offset, p.Limit), copySkill), nil
}

func (r *skillRepo) Top(_ context.Context, limit int) ([]*skill.Skill, error) {
	r.s.mu.RLock()
	sorted := mapSlice(r.s.skills, copySkill)
	r.s.mu.RUnlock()

	// Same order as the Postgres repo: folded name, then raw name, then id.
	slices.SortStableFunc(sorted, func(a, b *skill.Skill) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return window(sorted, 0, limit), nil
}

func (r *skillRepo) ListByProfile(_ context.Context, profileID int64) ([]*skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*skill.Skill, 0)
	for _, sk := range r.s.skills {
		if sk.ProfileID == profileID {
			out = append(out, copySkill(sk))
		}
	}
	return out, nil
}

func (r *skillRepo) Update(_ context.Context, sk *skill.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.skills, func(x *skill.Skill) bool { return x.ID == sk.ID })
	if i < 0 {
		return notFound("skill", sk.ID)
	}
	r.s.skills[i] = copySkill(sk)
	return nil
}

func (r *skillRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.skills, func(x *skill.Skill) bool { return x.ID == id })
	if i < 0 {
		return notFound("skill", id)
	}
	r.s.skills = slices.Delete(r.s.skills, i, i+1)
	return nil
}

type projectRepo struct{ s *Store }

func (r *projectRepo) Create(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = r.s.next("projects")
	r.s.projects = append(r.s.projects, copyProject(p))
	return nil
}

func (r *projectRepo) FindByID(_ context.Context, id int64) (*project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.projects {
		if p.ID == id {
			return copyProject(p), nil
		}
	}
	return nil, notFound("project", id)
}

func (r *projectRepo) List(_ context.Context, f project.Filter) ([]*project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := r.s.projects
	if f.SkillName != "" {
		owners := make(map[int64]bool)
		for _, sk := range r.s.skills {
			if containsFold(sk.Name, f.SkillName) {
				owners[sk.ProfileID] = true
			}
		}
		matched = make([]*project.Project, 0)
		for _, p := range r.s.projects {
			if owners[p.ProfileID] {
				matched = append(matched, p)
			}
		}
	}
	if f.NewestFirst {
		matched = slices.Clone(matched)
		slices.Reverse(matched)
	}
	return mapSlice(window(matched, f.Page.Offset, f.Page.Limit), copyProject), nil
}

func (r *projectRepo) ListByProfile(_ context.Context, profileID int64) ([]*project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*project.Project, 0)
	for _, p := range r.s.projects {
		if p.ProfileID == profileID {
			out = append(out, copyProject(p))
		}
	}
	return out, nil
}

func (r *projectRepo) Update(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.projects, func(x *project.Project) bool { return x.ID == p.ID })
	if i < 0 {
		return notFound("project", p.ID)
	}
	r.s.projects[i] = copyProject(p)
	return nil
}

func (r *projectRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.projects, func(x *project.Project) bool { return x.ID == id })
	if i < 0 {
		return notFound("project", id)
	}
	r.s.projects = slices.Delete(r.s.projects, i, i+1)
	return nil
}

type workRepo struct{ s *Store }

func (r *workRepo) Create(_ context.Context, w *work.Work) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w.ID = r.s.next("work")
	r.s.work = append(r.s.work, copyWork(w))
	return nil
}

func (r *workRepo) FindByID(_ context.Context, id int64) (*work.Work, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, w := range r.s.work {
		if w.ID == id {
			return copyWork(w), nil
		}
	}
	return nil, notFound("work", id)
}

func (r *workRepo) List(_ context.Context, p page.Page) ([]*work.Work, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mapSlice(window(r.s.work, p.Offset, p.Limit), copyWork), nil
}

func (r *workRepo) ListByProfile(_ context.Context, profileID int64) ([]*work.Work, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*work.Work, 0)
	for _, w := range r.s.work {
		if w.ProfileID == profileID {
			out = append(out, copyWork(w))
		}
	}
	return out, nil
}

func (r *workRepo) Update(_ context.Context, w *work.Work) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.work, func(x *work.Work) bool { return x.ID == w.ID })
	if i < 0 {
		return notFound("work", w.ID)
	}
	r.s.work[i] = copyWork(w)
	return nil
}

func (r *workRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := slices.IndexFunc(r.s.work, func(x *work.Work) bool { return x.ID == id })
	if i < 0 {
		return notFound("work", id)
	}
	r.s.work = slices.Delete(r.s.work, i, i+1)
	return nil
}

type searchRepo struct{ s *Store }

func (r *searchRepo) Search(_ context.Context, q string) (*search.Results, error) {
	res := &search.Results{Skills: []*skill.Skill{}, Projects: []*project.Project{}}
	if q == "" {
		return res, nil
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sk := range r.s.skills {
		if containsFold(sk.Name, q) {
			res.Skills = append(res.Skills, copySkill(sk))
		}
	}
	for _, p := range r.s.projects {
		if containsFold(p.Title, q) || containsFold(p.Description, q) {
			res.Projects = append(res.Projects, copyProject(p))
		}
	}
	return res, nil
}
