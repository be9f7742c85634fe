package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/me-api/adapters/apiclient"
	"github.com/khoahotran/me-api/adapters/event"
	"github.com/khoahotran/me-api/internal/application/service"
	sitemetaUC "github.com/khoahotran/me-api/internal/application/usecase/sitemeta"
	"github.com/khoahotran/me-api/internal/config"
	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/pkg/logger"
	"github.com/khoahotran/me-api/pkg/tracing"
)

func main() {
	fmt.Println("Starting Me-API Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatalf("FATAL: KAFKA_BROKERS is required for the worker")
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	shutdownTracing, err := tracing.Init(cfg, appLogger, "me-api-worker")
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Worker Use Case
	rewriteUC := sitemetaUC.NewSiteMetaUseCase(func(base string) service.PortfolioReader {
		return apiclient.New(base, apiclient.DefaultTimeout)
	}, appLogger)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPortfolioEvents,
		GroupID:  "sitemeta-rewriter-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicPortfolioEvents))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var e portfolio.ChangeEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			appLogger.Warn("Skipping malformed event", zap.Error(err), zap.String("key", string(msg.Key)))
			commitMessage(ctx, consumer, msg, appLogger)
			continue
		}

		appLogger.Info("Processing event",
			zap.String("event_type", string(e.EventType)),
			zap.String("entity", string(e.Entity)),
			zap.Int64("entity_id", e.EntityID),
		)

		out, err := rewriteUC.Execute(ctx, sitemetaUC.RewriteInput{
			HTMLPath: cfg.Site.HTMLPath,
			APIBase:  cfg.Site.APIBase,
			SiteURL:  cfg.Site.URL,
		})
		if err != nil {
			appLogger.Error("Failed to rewrite site metadata", err)
			continue
		}
		if !out.Updated {
			appLogger.Warn("Missing API base URL, metadata left unchanged")
		}

		commitMessage(ctx, consumer, msg, appLogger)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
