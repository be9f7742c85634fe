package skill

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/me-api/internal/application/service"
	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

var tracer = otel.Tracer("skill_usecase")

type SkillUseCase struct {
	repo        skill.Repository
	profileRepo profile.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewSkillUseCase(r skill.Repository, profiles profile.Repository, events service.EventPublisher, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{repo: r, profileRepo: profiles, events: events, logger: log}
}

type CreateSkillInput struct {
	Name        string
	Proficiency string
}

func (uc *SkillUseCase) Create(ctx context.Context, in CreateSkillInput) (*skill.Skill, error) {
	ctx, span := tracer.Start(ctx, "Create")
	defer span.End()

	ownerID, err := service.OwnerID(ctx, uc.profileRepo)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s := &skill.Skill{Name: in.Name, Proficiency: in.Proficiency, ProfileID: ownerID}
	if err := uc.repo.Create(ctx, s); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("skill_id", s.ID))
	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventCreated, portfolio.EntitySkill, s.ID))
	return s, nil
}

func (uc *SkillUseCase) Get(ctx context.Context, id int64) (*skill.Skill, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *SkillUseCase) List(ctx context.Context, limit *int, offset int) ([]*skill.Skill, error) {
	return uc.repo.List(ctx, page.List(limit, offset))
}

// Top returns skills ordered by name, at most 50.
func (uc *SkillUseCase) Top(ctx context.Context, limit *int) ([]*skill.Skill, error) {
	return uc.repo.Top(ctx, page.Top(limit).Limit)
}

func (uc *SkillUseCase) Update(ctx context.Context, id int64, upd skill.Update) (*skill.Skill, error) {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()

	if err := upd.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	upd.Apply(s)
	if err := uc.repo.Update(ctx, s); err != nil {
		span.RecordError(err)
		return nil, err
	}

	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventUpdated, portfolio.EntitySkill, s.ID))
	return s, nil
}

func (uc *SkillUseCase) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()

	if err := uc.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventDeleted, portfolio.EntitySkill, id))
	return nil
}
