package search

import (
	"context"

	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
)

type Results struct {
	Skills   []*skill.Skill
	Projects []*project.Project
}

// Repository matches query as a case-insensitive literal substring of skill
// names and of project titles or descriptions.
type Repository interface {
	Search(ctx context.Context, query string) (*Results, error)
}
