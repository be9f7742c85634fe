package project

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/me-api/internal/application/service"
	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

var tracer = otel.Tracer("project_usecase")

type ProjectUseCase struct {
	repo        project.Repository
	profileRepo profile.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewProjectUseCase(r project.Repository, profiles profile.Repository, events service.EventPublisher, log logger.Logger) *ProjectUseCase {
	return &ProjectUseCase{repo: r, profileRepo: profiles, events: events, logger: log}
}

type CreateProjectInput struct {
	Title       string
	Description string
	Links       map[string]any
}

func (uc *ProjectUseCase) Create(ctx context.Context, in CreateProjectInput) (*project.Project, error) {
	ctx, span := tracer.Start(ctx, "Create")
	defer span.End()

	ownerID, err := service.OwnerID(ctx, uc.profileRepo)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	p := &project.Project{
		Title:       in.Title,
		Description: in.Description,
		Links:       in.Links,
		ProfileID:   ownerID,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("project_id", p.ID))
	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventCreated, portfolio.EntityProject, p.ID))
	return p, nil
}

func (uc *ProjectUseCase) Get(ctx context.Context, id int64) (*project.Project, error) {
	return uc.repo.FindByID(ctx, id)
}

type ListProjectsInput struct {
	Skill  string
	Limit  *int
	Offset int
}

// List filters by a skill name substring when Skill is set. Every project
// belongs to the one profile, so a match returns all of them.
func (uc *ProjectUseCase) List(ctx context.Context, in ListProjectsInput) ([]*project.Project, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	span.SetAttributes(attribute.String("skill", in.Skill))
	return uc.repo.List(ctx, project.Filter{SkillName: in.Skill, Page: page.List(in.Limit, in.Offset)})
}

func (uc *ProjectUseCase) Update(ctx context.Context, id int64, upd project.Update) (*project.Project, error) {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()

	if err := upd.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	upd.Apply(p)
	if err := uc.repo.Update(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventUpdated, portfolio.EntityProject, p.ID))
	return p, nil
}

func (uc *ProjectUseCase) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()

	if err := uc.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventDeleted, portfolio.EntityProject, id))
	return nil
}
