package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/me-api/internal/config"
	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/pkg/logger"
)

const TopicPortfolioEvents = "portfolio.events"

// publishTimeout bounds one background write to the broker.
const publishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer messageWriter
	logger logger.Logger

	inflight sync.WaitGroup
}

func NewKafkaProducer(cfg config.Config, log logger.Logger) (*KafkaProducer, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicPortfolioEvents,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka producer successfully.", zap.Strings("brokers", brokers))
	return &KafkaProducer{writer: writer, logger: log}, nil
}

// Publish hands the event to a background goroutine and returns at once, so
// a slow broker never holds up the request that produced the change. Only a
// marshal failure is returned; write failures are logged.
func (p *KafkaProducer) Publish(ctx context.Context, e portfolio.ChangeEvent) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal portfolio event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(uuid.NewString()),
		Value: value,
	}

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()

		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := p.writer.WriteMessages(bgCtx, msg); err != nil {
			p.logger.Error("Failed to publish portfolio event", err,
				zap.String("entity", string(e.Entity)), zap.Int64("entity_id", e.EntityID))
		}
	}()
	return nil
}

// Close waits for pending publishes, then closes the writer.
func (p *KafkaProducer) Close() {
	p.inflight.Wait()
	if p.writer != nil {
		if err := p.writer.Close(); err != nil {
			p.logger.Warn("Closing Kafka producer failed", zap.Error(err))
		}
	}
	p.logger.Info("Closed Kafka producer")
}
