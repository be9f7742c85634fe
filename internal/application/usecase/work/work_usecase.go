package work

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/me-api/internal/application/service"
	"github.com/khoahotran/me-api/internal/domain/page"
	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/work"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

var tracer = otel.Tracer("work_usecase")

type WorkUseCase struct {
	repo        work.Repository
	profileRepo profile.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewWorkUseCase(r work.Repository, profiles profile.Repository, events service.EventPublisher, log logger.Logger) *WorkUseCase {
	return &WorkUseCase{repo: r, profileRepo: profiles, events: events, logger: log}
}

type CreateWorkInput struct {
	Company     string
	Role        string
	StartDate   string
	EndDate     *string
	Description *string
}

func (uc *WorkUseCase) Create(ctx context.Context, in CreateWorkInput) (*work.Work, error) {
	ctx, span := tracer.Start(ctx, "Create")
	defer span.End()

	ownerID, err := service.OwnerID(ctx, uc.profileRepo)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	w := &work.Work{
		Company:     in.Company,
		Role:        in.Role,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
		ProfileID:   ownerID,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("work_id", w.ID))
	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventCreated, portfolio.EntityWork, w.ID))
	return w, nil
}

func (uc *WorkUseCase) Get(ctx context.Context, id int64) (*work.Work, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *WorkUseCase) List(ctx context.Context, limit *int, offset int) ([]*work.Work, error) {
	return uc.repo.List(ctx, page.List(limit, offset))
}

func (uc *WorkUseCase) Update(ctx context.Context, id int64, upd work.Update) (*work.Work, error) {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()

	if err := upd.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	w, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	upd.Apply(w)
	if err := uc.repo.Update(ctx, w); err != nil {
		span.RecordError(err)
		return nil, err
	}

	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventUpdated, portfolio.EntityWork, w.ID))
	return w, nil
}

func (uc *WorkUseCase) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()

	if err := uc.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	service.Notify(ctx, uc.events, uc.logger, portfolio.NewChangeEvent(portfolio.EventDeleted, portfolio.EntityWork, id))
	return nil
}
