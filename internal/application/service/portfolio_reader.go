package service

import (
	"context"

	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
)

// PortfolioReader fetches the public view of the portfolio.
type PortfolioReader interface {
	Profile(ctx context.Context) (*profile.Profile, error)
	Skills(ctx context.Context) ([]*skill.Skill, error)
	Projects(ctx context.Context) ([]*project.Project, error)
}
