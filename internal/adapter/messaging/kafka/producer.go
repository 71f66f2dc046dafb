// Package kafka publishes domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"collections-backend/internal/domain/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const schemaVersion = "1.0"

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
}

// Producer implements events.Publisher.
type Producer struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

var _ events.Publisher = (*Producer)(nil)

func NewProducer(cfg ProducerConfig, logger *zap.Logger) *Producer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
	}
	return newProducer(w, cfg.Topic, logger)
}

func newProducer(w messageWriter, topic string, logger *zap.Logger) *Producer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Producer{writer: w, topic: topic, logger: logger}
}

// Publish writes the events as one batch. Events sharing a key land on the
// same partition, so a customer's events stay ordered.
func (p *Producer) Publish(ctx context.Context, evs ...events.Event) error {
	if len(evs) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(evs))
	for _, ev := range evs {
		value, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", ev.Type, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ev.Key),
			Value: value,
			Time:  ev.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(ev.ID)},
				{Key: "event_type", Value: []byte(ev.Type)},
				{Key: "schema_version", Value: []byte(schemaVersion)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error("publish events failed", zap.String("topic", p.topic), zap.Int("batch_size", len(msgs)), zap.Error(err))
		return err
	}
	p.logger.Debug("published events", zap.String("topic", p.topic), zap.Int("batch_size", len(msgs)))
	return nil
}

func (p *Producer) Close() error { return p.writer.Close() }
