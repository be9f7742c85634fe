package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/khoahotran/me-api/adapters/persistence"
	migrateUC "github.com/khoahotran/me-api/internal/application/usecase/migrate"
	"github.com/khoahotran/me-api/internal/config"
	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/dburl"
	"github.com/khoahotran/me-api/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	flags := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flags.SetOutput(out)
	source := flags.String("source", "", "source database URL (sqlite:///path or postgresql://...)")
	target := flags.String("target", "", "target PostgreSQL URL")
	reset := flags.Bool("reset", false, "wipe the target before copying")
	if err := flags.Parse(args); err != nil {
		usage(out)
		return 1
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(out, "cannot load config: %v\n", err)
		return 1
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	in := migrateUC.RunInput{
		SourceURL: firstNonEmpty(*source, cfg.Migrate.SourceURL),
		TargetURL: firstNonEmpty(*target, cfg.Migrate.TargetURL),
		Reset:     *reset,
	}

	uc := migrateUC.NewMigrateUseCase(
		func(ctx context.Context, url string) (portfolio.Source, error) {
			if dburl.IsSQLite(url) {
				return persistence.NewSQLiteSource(url)
			}
			return persistence.NewPostgresSource(ctx, url, appLogger)
		},
		func(ctx context.Context, url string) (portfolio.Target, error) {
			return persistence.NewPostgresTarget(ctx, url, appLogger)
		},
		appLogger,
	)

	counts, err := uc.Run(context.Background(), in)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrInvalidTarget):
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			fmt.Fprintln(out, appErr.Details+".")
		}
		usage(out)
		return 1
	case errors.Is(err, apperror.ErrTargetNotEmpty):
		fmt.Fprintln(out, "Target database is not empty.")
		fmt.Fprintln(out, "Run with --reset to wipe target before copying.")
		return 1
	default:
		fmt.Fprintf(out, "Migration failed: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "Migration complete.")
	fmt.Fprintf(out, "Profiles: %d\n", counts.Profiles)
	fmt.Fprintf(out, "Skills: %d\n", counts.Skills)
	fmt.Fprintf(out, "Projects: %d\n", counts.Projects)
	fmt.Fprintf(out, "Work: %d\n", counts.Work)
	return 0
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  TARGET_DATABASE_URL=<postgres_url> migrate [--source URL] [--target URL] [--reset]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Optional:")
	fmt.Fprintln(out, "  SQLITE_URL="+dburl.DefaultSQLite)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
