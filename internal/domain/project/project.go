package project

import (
	"context"
	"errors"

	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/pkg/optional"
)

type Project struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Links       map[string]any `json:"links"`
	ProfileID   int64          `json:"profile_id"`
}

// LinkKey is the conventional key of the project's URL inside Links.
const LinkKey = "link"

// URL returns Links["link"] when it is a string.
func (p *Project) URL() string {
	if p.Links == nil {
		return ""
	}
	s, _ := p.Links[LinkKey].(string)
	return s
}

var ErrRequiredFieldNull = errors.New("title and description cannot be null")

type Update struct {
	Title       optional.Value[string]
	Description optional.Value[string]
	Links       optional.Value[map[string]any]
}

func (u Update) Validate() error {
	if u.Title.IsNull() || u.Description.IsNull() {
		return ErrRequiredFieldNull
	}
	return nil
}

func (u Update) Apply(p *Project) {
	u.Title.ApplyTo(&p.Title)
	u.Description.ApplyTo(&p.Description)
	u.Links.ApplyTo(&p.Links)
}

type Filter struct {
	// SkillName keeps projects whose owning profile has a skill whose name
	// contains SkillName, case-insensitively.
	SkillName   string
	// NewestFirst orders by id descending instead of ascending.
	NewestFirst bool
	Page        page.Page
}

type Repository interface {
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context, f Filter) ([]*Project, error)
	ListByProfile(ctx context.Context, profileID int64) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id int64) error
}
