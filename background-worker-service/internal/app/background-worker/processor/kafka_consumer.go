package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"biashara/background-worker-service/internal/app/background-worker/entity"
	"biashara/background-worker-service/internal/app/background-worker/service"
	"biashara/pkg/metrics"

	"biashara/pkg/logger"
	"github.com/segmentio/kafka-go"
)

const serviceName = "background-worker-service"

// KafkaConsumer обрабатывает события из Kafka топика review_events
type KafkaConsumer struct {
	reader    *kafka.Reader
	ratingSvc service.RatingRecalculationServiceInterface
	topic     string
	groupID   string
	stopChan  chan struct{}
	doneChan  chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	ratingSvc service.RatingRecalculationServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    minBytes,
		MaxBytes:    maxBytes,
		StartOffset: kafka.LastOffset,
		// Offset коммитится вручную после успешной обработки
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:    reader,
		ratingSvc: ratingSvc,
		topic:     topic,
		groupID:   groupID,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Str("topic", c.topic).Str("group", c.groupID).Msg("Starting Kafka consumer")
	go c.consume(ctx)
}

// Stop останавливает consumer
func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer")
	close(c.stopChan)
	<-c.doneChan
	if err := c.reader.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close Kafka reader")
	}
	logger.Info().Msg("Kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if readCtx.Err() == context.DeadlineExceeded {
					continue
				}

				logger.Error().Err(err).Msg("Failed to fetch message")
				metrics.KafkaErrors.WithLabelValues(serviceName, c.topic, "fetch").Inc()
				time.Sleep(time.Second)
				continue
			}

			start := time.Now()
			if err := c.processMessage(ctx, message); err != nil {
				// Offset не коммитится, сообщение будет обработано повторно
				logger.Error().
					Err(err).
					Int64("offset", message.Offset).
					Int("partition", message.Partition).
					Msg("Failed to process message")
				metrics.KafkaErrors.WithLabelValues(serviceName, c.topic, "process").Inc()
				continue
			}
			metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID, time.Since(start))

			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Error().Err(err).Msg("Failed to commit message")
				metrics.KafkaErrors.WithLabelValues(serviceName, c.topic, "commit").Inc()
			}
		}
	}
}

// processMessage обрабатывает одно сообщение из Kafka
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.ReviewEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		// Некорректный JSON повторной обработкой не исправить
		logger.Warn().
			Err(err).
			Int64("offset", message.Offset).
			Msg("Skipping malformed review event")
		return nil
	}

	logger.Info().
		Str("event_type", event.EventType).
		Str("review_id", event.ReviewID).
		Str("entity_id", event.EntityID).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received review event")

	if err := c.ratingSvc.ProcessReviewEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to process review event: %w", err)
	}
	metrics.RecordRatingRecompute(serviceName, "event")

	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
