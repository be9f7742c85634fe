package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/me-api/adapters/event"
	httpAdapter "github.com/khoahotran/me-api/adapters/http"
	"github.com/khoahotran/me-api/adapters/persistence"
	"github.com/khoahotran/me-api/adapters/persistence/memory"
	"github.com/khoahotran/me-api/internal/application/service"
	profileUC "github.com/khoahotran/me-api/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/me-api/internal/application/usecase/project"
	searchUC "github.com/khoahotran/me-api/internal/application/usecase/search"
	skillUC "github.com/khoahotran/me-api/internal/application/usecase/skill"
	workUC "github.com/khoahotran/me-api/internal/application/usecase/work"
	"github.com/khoahotran/me-api/internal/config"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/internal/domain/project"
	"github.com/khoahotran/me-api/internal/domain/search"
	"github.com/khoahotran/me-api/internal/domain/skill"
	"github.com/khoahotran/me-api/internal/domain/work"
	"github.com/khoahotran/me-api/pkg/auth"
	"github.com/khoahotran/me-api/pkg/dburl"
	"github.com/khoahotran/me-api/pkg/logger"
	"github.com/khoahotran/me-api/pkg/ratelimit"
	"github.com/khoahotran/me-api/pkg/tracing"
)

type repositories struct {
	profiles profile.Repository
	skills   skill.Repository
	projects project.Repository
	work     work.Repository
	search   search.Repository
}

func main() {
	fmt.Println("Start Me-API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(cfg, appLogger, "me-api-server")
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			appLogger.Error("Failed to flush traces", err)
		}
	}()

	// Storage
	repos, closeStore, err := openRepositories(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open storage", err)
	}
	defer closeStore()

	// Rate limiter: shared through Redis when configured, process-local otherwise
	limitCfg := ratelimit.Config{Limit: cfg.RateLimit.Limit, Window: cfg.RateWindow()}
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(limitCfg)
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect Redis", err)
		}
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, limitCfg)
	}

	// Change events
	events := service.NewNopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := event.NewKafkaProducer(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize Kafka producer", err)
		}
		defer producer.Close()
		events = producer
	}

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(repos.profiles, repos.skills, repos.projects, repos.work, events, appLogger)
	skillUseCase := skillUC.NewSkillUseCase(repos.skills, repos.profiles, events, appLogger)
	projectUseCase := projectUC.NewProjectUseCase(repos.projects, repos.profiles, events, appLogger)
	feedUseCase := projectUC.NewFeedUseCase(repos.projects, repos.profiles, cfg.Site.URL, appLogger)
	workUseCase := workUC.NewWorkUseCase(repos.work, repos.profiles, events, appLogger)
	searchUseCase := searchUC.NewSearchUseCase(repos.search, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Profile: httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Skill:   httpAdapter.NewSkillHandler(skillUseCase, appLogger),
		Project: httpAdapter.NewProjectHandler(projectUseCase, feedUseCase, appLogger),
		Work:    httpAdapter.NewWorkHandler(workUseCase, appLogger),
		Search:  httpAdapter.NewSearchHandler(searchUseCase, appLogger),
	}

	gate := auth.NewAdminGate(cfg.Auth.AdminAPIKey)
	if !gate.Enabled() {
		appLogger.Warn("ADMIN_API_KEY is not set, every admin endpoint will answer 401")
	}

	router, err := httpAdapter.NewRouter(handlers, httpAdapter.RouterOptions{
		TrustedProxies: cfg.App.TrustedProxies,
		CORSOrigins:    cfg.CORSOrigins(),
		Limiter:        limiter,
		Gate:           gate,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build router", err)
	}

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}

// openRepositories picks the store from DATABASE_URL. PostgreSQL gets its
// schema applied first; memory:// (or an empty URL) runs the demo store.
func openRepositories(ctx context.Context, cfg config.Config, log logger.Logger) (repositories, func(), error) {
	dsn := cfg.DB.DSN
	switch {
	case dsn == "" || dburl.IsMemory(dsn):
		log.Warn("Using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			profiles: store.Profiles(),
			skills:   store.Skills(),
			projects: store.Projects(),
			work:     store.Work(),
			search:   store.Search(),
		}, func() {}, nil

	case dburl.IsPostgres(dsn):
		if err := persistence.RunMigrations(dsn, log); err != nil {
			return repositories{}, nil, err
		}
		pool, err := persistence.NewPostgresPool(ctx, dsn, log)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			profiles: persistence.NewPostgresProfileRepo(pool, log),
			skills:   persistence.NewPostgresSkillRepo(pool, log),
			projects: persistence.NewPostgresProjectRepo(pool, log),
			work:     persistence.NewPostgresWorkRepo(pool, log),
			search:   persistence.NewPostgresSearchRepo(pool, log),
		}, pool.Close, nil

	case dburl.IsSQLite(dsn):
		return repositories{}, nil, fmt.Errorf("sqlite is only supported as a migration source, run cmd/migrate to move data into PostgreSQL")
	}
	return repositories{}, nil, fmt.Errorf("unsupported DATABASE_URL scheme in %q", dsn)
}
