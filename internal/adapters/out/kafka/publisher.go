// Package kafka publishes ledger domain events to a Kafka topic. Messages
// are keyed by aggregate ID so all events of one dispatch note land on the
// same partition in order.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const headerEventName = "event-name"

// Writer is the subset of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter builds a synchronous writer for one topic.
func NewWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

type EventPublisher struct {
	writer     Writer
	breaker    *gobreaker.CircuitBreaker
	maxRetries uint64
	backoff    func() backoff.BackOff
	logger     *zap.Logger
}

type Option func(*EventPublisher)

// WithMaxRetries bounds retries after the first attempt.
func WithMaxRetries(n uint64) Option {
	return func(p *EventPublisher) {
		p.maxRetries = n
	}
}

// WithBackOff replaces the exponential retry schedule.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(p *EventPublisher) {
		p.backoff = fn
	}
}

// WithBreakerSettings replaces the default circuit breaker.
func WithBreakerSettings(settings gobreaker.Settings) Option {
	return func(p *EventPublisher) {
		p.breaker = gobreaker.NewCircuitBreaker(settings)
	}
}

func NewEventPublisher(writer Writer, logger *zap.Logger, opts ...Option) *EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &EventPublisher{
		writer:     writer,
		maxRetries: 3,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
		logger: logger.With(zap.String("component", "kafka_publisher")),
	}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kafka-dispatch-events",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish writes all events as one batch. Transient failures are retried
// with backoff; an open breaker fails fast.
func (p *EventPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		body, err := encode(event)
		if err != nil {
			return fmt.Errorf("encode %s: %w", event.EventName(), err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.AggregateID().String()),
			Value: body,
			Time:  event.OccurredAt(),
			Headers: []kafka.Header{
				{Key: headerEventName, Value: []byte(event.EventName())},
			},
		})
	}

	attempt := func() error {
		_, err := p.breaker.Execute(func() (any, error) {
			return nil, p.writer.WriteMessages(ctx, msgs...)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(err)
		}
		return err
	}

	schedule := backoff.WithContext(backoff.WithMaxRetries(p.backoff(), p.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		p.logger.Warn("retrying event publish", zap.Error(err), zap.Duration("wait", wait))
	}

	if err := backoff.RetryNotify(attempt, schedule, notify); err != nil {
		return fmt.Errorf("publish %d events: %w", len(msgs), err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
