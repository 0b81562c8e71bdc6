// Package queue publishes domain events to Kafka.
package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tickethub/payouts_backend/internal/core/ports"
)

// Producer implements ports.EventPublisher on top of a kafka.Writer.
// A nil Producer is valid and silently drops events, so callers don't need
// to care whether a broker is configured.
type Producer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewProducer creates a Kafka producer for the given broker and topic.
func NewProducer(broker, topic string, logger *slog.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: 10 * time.Second,
		},
		log: logger.With(slog.String("component", "kafka_producer"), slog.String("topic", topic)),
	}
}

var _ ports.EventPublisher = (*Producer)(nil)

// Publish writes one message to the topic. Bounded by its own timeout so a
// slow broker cannot hold up the request that produced the event.
func (p *Producer) Publish(ctx context.Context, key []byte, value []byte) error {
	if p == nil || p.writer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
