package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a transaction. Events
// are handed to the publisher only after the transaction commits.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
