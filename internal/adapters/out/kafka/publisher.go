// Package kafka mirrors committed domain events to Kafka topics so
// external consumers (analytics, archival) see the same stream as
// in-process subscribers. Delivery is best-effort: a broker outage is
// logged, never surfaced to the mutation that produced the event.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Publisher implements ports.EventPublisher on top of a shared
// asynchronous kafka.Writer. Channels map to topics; events on an
// unmapped channel are skipped.
type Publisher struct {
	writer *kafka.Writer
	topics map[string]string
	logger *slog.Logger
}

// NewPublisher creates a mirror publisher for the given brokers. The
// topics map routes bus channels to Kafka topics.
func NewPublisher(brokers []string, topics map[string]string, logger *slog.Logger) *Publisher {
	return &Publisher{
		topics: topics,
		logger: logger.With("component", "kafka-publisher"),
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
			Async:                  true,
		},
	}
}

// Publish mirrors one event. The async writer returns immediately; write
// failures arrive on the completion callback and are only logged.
func (p *Publisher) Publish(ctx context.Context, channel string, event ports.Event) {
	topic, ok := p.topics[channel]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal event", "channel", channel, "type", event.Type, "error", err)
		return
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(string(event.Type)),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("mirror event", "topic", topic, "type", event.Type, "error", err)
	}
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
