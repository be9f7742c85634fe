package migrate

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/dburl"
	"github.com/khoahotran/me-api/pkg/logger"
)

var tracer = otel.Tracer("migrate_usecase")

type SourceOpener func(ctx context.Context, url string) (portfolio.Source, error)

type TargetOpener func(ctx context.Context, url string) (portfolio.Target, error)

type MigrateUseCase struct {
	openSource SourceOpener
	openTarget TargetOpener
	logger     logger.Logger
}

func NewMigrateUseCase(src SourceOpener, dst TargetOpener, log logger.Logger) *MigrateUseCase {
	return &MigrateUseCase{openSource: src, openTarget: dst, logger: log}
}

type RunInput struct {
	SourceURL string
	TargetURL string
	Reset     bool
}

// Run copies every row from the source into an empty (or reset) PostgreSQL
// target and returns how many rows of each kind were copied.
func (uc *MigrateUseCase) Run(ctx context.Context, in RunInput) (portfolio.Counts, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.Bool("reset", in.Reset))

	var none portfolio.Counts

	if in.TargetURL == "" {
		return none, apperror.NewInvalidTarget("missing TARGET_DATABASE_URL or DATABASE_URL")
	}
	if !dburl.IsPostgres(in.TargetURL) {
		return none, apperror.NewInvalidTarget("TARGET_DATABASE_URL must point to Postgres, not SQLite")
	}
	if in.SourceURL == "" {
		in.SourceURL = dburl.DefaultSQLite
	}

	source, err := uc.openSource(ctx, in.SourceURL)
	if err != nil {
		span.RecordError(err)
		return none, fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	target, err := uc.openTarget(ctx, in.TargetURL)
	if err != nil {
		span.RecordError(err)
		return none, fmt.Errorf("open target: %w", err)
	}
	defer target.Close()

	if err := target.EnsureSchema(ctx); err != nil {
		span.RecordError(err)
		return none, fmt.Errorf("prepare target schema: %w", err)
	}

	if in.Reset {
		if err := target.Reset(ctx); err != nil {
			span.RecordError(err)
			return none, fmt.Errorf("reset target: %w", err)
		}
		uc.logger.Info("Target reset")
	} else {
		existing, err := target.Counts(ctx)
		if err != nil {
			span.RecordError(err)
			return none, err
		}
		if existing.Total() > 0 {
			return none, apperror.NewTargetNotEmpty("run with --reset to wipe target before copying")
		}
	}

	snap, err := source.Snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		return none, fmt.Errorf("read source: %w", err)
	}

	if err := target.Load(ctx, snap); err != nil {
		span.RecordError(err)
		return none, fmt.Errorf("copy rows: %w", err)
	}
	if err := target.ResyncSequences(ctx); err != nil {
		span.RecordError(err)
		return none, err
	}

	counts := snap.Counts()
	uc.logger.Info("Migration complete",
		zap.Int("profiles", counts.Profiles),
		zap.Int("skills", counts.Skills),
		zap.Int("projects", counts.Projects),
		zap.Int("work", counts.Work),
	)
	return counts, nil
}
