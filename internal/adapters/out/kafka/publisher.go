// Package kafka publishes job change events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobdispatch/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// DefaultPublishTimeout bounds a single publish when none is configured.
const DefaultPublishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// JobChangedPublisher implements ports.JobEventPublisher. Messages are keyed by job id,
// so all events of one job land on the same partition in commit order.
type JobChangedPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewJobChangedPublisher creates a publisher writing synchronously to topic on brokers.
func NewJobChangedPublisher(brokers []string, topic string, timeout time.Duration) *JobChangedPublisher {
	return newJobChangedPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}, timeout)
}

func newJobChangedPublisher(writer messageWriter, timeout time.Duration) *JobChangedPublisher {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &JobChangedPublisher{writer: writer, timeout: timeout}
}

type jobChangedMessage struct {
	JobID        string    `json:"job_id"`
	Operation    string    `json:"operation"`
	Status       string    `json:"status"`
	TranslatorID *string   `json:"translator_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func (p *JobChangedPublisher) PublishJobChanged(ctx context.Context, event ports.JobChangedEvent) error {
	msg := jobChangedMessage{
		JobID:      event.JobID.String(),
		Operation:  event.Operation,
		Status:     event.Status,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.TranslatorID != nil {
		translatorID := event.TranslatorID.String()
		msg.TranslatorID = &translatorID
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode job changed event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.JobID),
		Value: value,
		Time:  msg.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to publish job changed event: %w", err)
	}
	return nil
}

func (p *JobChangedPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher discards events. It is wired when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishJobChanged(context.Context, ports.JobChangedEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
