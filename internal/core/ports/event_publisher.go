package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventPublisher ships domain events to downstream consumers. It is only
// called after the transaction that produced the events has committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
