package profile

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/me-api/internal/application/service"
	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/internal/domain/work"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo profile.Repository
	skillRepo   skill.Repository
	projectRepo project.Repository
	workRepo    work.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewProfileUseCase(
	profiles profile.Repository,
	skills skill.Repository,
	projects project.Repository,
	items work.Repository,
	events service.EventPublisher,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profiles,
		skillRepo:   skills,
		projectRepo: projects,
		workRepo:    items,
		events:      events,
		logger:      log,
	}
}

type CreateProfileInput struct {
	Name      string
	Email     string
	Education string
	Github    *string
	Linkedin  *string
}

// ProfileDetail is the profile together with everything it owns.
type ProfileDetail struct {
	Profile  *profile.Profile
	Skills   []*skill.Skill
	Projects []*project.Project
	Work     []*work.Work
}

func (uc *ProfileUseCase) Create(ctx context.Context, in CreateProfileInput) (*ProfileDetail, error) {
	ctx, span := tracer.Start(ctx, "Create")
	defer span.End()

	if _, err := uc.profileRepo.First(ctx); err == nil {
		err = apperror.NewAlreadyExists("profile")
		span.RecordError(err)
		return nil, err
	} else if !errors.Is(err, apperror.ErrNotFound) {
		span.RecordError(err)
		return nil, err
	}

	p := &profile.Profile{
		Name:      in.Name,
		Email:     in.Email,
		Education: in.Education,
		Github:    in.Github,
		Linkedin:  in.Linkedin,
	}
	if err := uc.profileRepo.Create(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("profile_id", p.ID))
	uc.logger.Info("Profile created", zap.Int64("profile_id", p.ID))
	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventCreated, portfolio.EntityProfile, p.ID))

	return &ProfileDetail{
		Profile:  p,
		Skills:   []*skill.Skill{},
		Projects: []*project.Project{},
		Work:     []*work.Work{},
	}, nil
}

func (uc *ProfileUseCase) Get(ctx context.Context) (*ProfileDetail, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()

	p, err := uc.profileRepo.First(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			err = apperror.NewAppError(apperror.ErrNotFound, "Create profile first", "no profile exists yet", nil)
		}
		span.RecordError(err)
		return nil, err
	}
	return uc.detail(ctx, p)
}

func (uc *ProfileUseCase) Update(ctx context.Context, upd profile.Update) (*ProfileDetail, error) {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()

	if err := upd.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	p, err := uc.profileRepo.First(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	upd.Apply(p)
	if err := uc.profileRepo.Update(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventUpdated, portfolio.EntityProfile, p.ID))
	return uc.detail(ctx, p)
}

// Delete removes the profile and, by cascade, everything it owns.
func (uc *ProfileUseCase) Delete(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()

	p, err := uc.profileRepo.First(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := uc.profileRepo.Delete(ctx, p.ID); err != nil {
		span.RecordError(err)
		return err
	}

	uc.logger.Info("Profile deleted", zap.Int64("profile_id", p.ID))
	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventDeleted, portfolio.EntityProfile, p.ID))
	return nil
}

func (uc *ProfileUseCase) detail(ctx context.Context, p *profile.Profile) (*ProfileDetail, error) {
	skills, err := uc.skillRepo.ListByProfile(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile skills: %w", err)
	}
	projects, err := uc.projectRepo.ListByProfile(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile projects: %w", err)
	}
	items, err := uc.workRepo.ListByProfile(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile work: %w", err)
	}
	return &ProfileDetail{Profile: p, Skills: skills, Projects: projects, Work: items}, nil
}
