package dispatch

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

const (
	EventDispatchCreated       = "dispatch.created"
	EventDispatchStatusChanged = "dispatch.status_changed"
)

// CreatedEvent is recorded when a note is persisted by the executor.
type CreatedEvent struct {
	NoteID   kernel.UUID
	OrderID  kernel.UUID
	Number   Number
	Status   Status
	Quantity int
	At       time.Time
}

func (e CreatedEvent) EventName() string { return EventDispatchCreated }
func (e CreatedEvent) AggregateID() kernel.UUID { return e.NoteID }
func (e CreatedEvent) OccurredAt() time.Time { return e.At }

// StatusChangedEvent is recorded on every accepted transition. Reversed is
// set when the transition returned the note's quantities to stock.
type StatusChangedEvent struct {
	NoteID   kernel.UUID
	OrderID  kernel.UUID
	From     Status
	To       Status
	Reversed bool
	At       time.Time
}

func (e StatusChangedEvent) EventName() string { return EventDispatchStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.NoteID }
func (e StatusChangedEvent) OccurredAt() time.Time { return e.At }
