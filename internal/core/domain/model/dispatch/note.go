package dispatch

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrNoteIsNotConstructed = errors.New("DispatchNote must be created via NewNote constructor")
	ErrEntriesAreRequired   = errs.NewValueIsRequiredError("entries")
	// ErrAlreadyReversed guards the reversal against running twice even if
	// the transition table is ever extended with a way out of RETURNED.
	ErrAlreadyReversed = errors.New("dispatch note has already been reversed")
)

// Note is a dispatch note (challan): one shipment against an order. Its
// entries are immutable; only the effect of the note can be undone, by
// moving it into RETURNED.
type Note struct {
	id           kernel.UUID
	orderID      kernel.UUID
	number       Number
	status       Status
	dispatchDate *time.Time
	deliveryDate *time.Time
	reversedAt   *time.Time
	createdAt    time.Time
	entries      []Entry

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewNoteParams carries the inputs of a new note. Status defaults to DRAFT.
type NewNoteParams struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	Number       Number
	Status       Status
	DispatchDate *time.Time
	DeliveryDate *time.Time
	Entries      []Entry
}

// NewNote creates a note and records a CreatedEvent. Creating directly in
// DISPATCHED stamps the dispatch date when missing; DELIVERED stamps both
// dates when missing. Dates a status has not reached yet are rejected. A
// line item may appear only once.
func NewNote(p NewNoteParams, now time.Time) (*Note, error) {
	if p.Status == Unknown {
		p.Status = Draft
	}

	note := &Note{
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		note.setID(p.ID),
		note.setOrderID(p.OrderID),
		note.setNumber(p.Number),
		p.Status.ValidateInitial(),
		ValidateInitialDates(p.Status, p.DispatchDate, p.DeliveryDate),
		note.setEntries(p.Entries),
	); err != nil {
		return nil, err
	}

	note.status = p.Status
	note.dispatchDate = copyTime(p.DispatchDate)
	note.deliveryDate = copyTime(p.DeliveryDate)

	if p.Status == Dispatched || p.Status == Delivered {
		if note.dispatchDate == nil {
			note.dispatchDate = copyTime(&now)
		}
	}
	if p.Status == Delivered && note.deliveryDate == nil {
		note.deliveryDate = copyTime(&now)
	}

	note.record(CreatedEvent{
		NoteID:   note.id,
		OrderID:  note.orderID,
		Number:   note.number,
		Status:   note.status,
		Quantity: note.TotalQuantity(),
		At:       now,
	})

	return note, nil
}

// ValidateInitialDates checks caller supplied dates against the initial
// status: a dispatch date needs DISPATCHED or later, a delivery date needs
// DELIVERED.
func ValidateInitialDates(status Status, dispatchDate, deliveryDate *time.Time) error {
	if status == Unknown {
		status = Draft
	}
	if dispatchDate != nil && status == Draft {
		return errs.NewValueIsInvalidErrorWithCause(
			"dispatch date is invalid",
			fmt.Errorf("a %s note has not been dispatched", status),
		)
	}
	if deliveryDate != nil && status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery date is invalid",
			fmt.Errorf("a %s note has not been delivered", status),
		)
	}
	return nil
}

// RestoreNoteParams carries persisted state.
type RestoreNoteParams struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	Number       Number
	Status       Status
	DispatchDate *time.Time
	DeliveryDate *time.Time
	ReversedAt   *time.Time
	CreatedAt    time.Time
	Entries      []Entry
}

// RestoreNote rebuilds a note read from persistence. No events are recorded.
func RestoreNote(p RestoreNoteParams) (*Note, error) {
	note := &Note{
		createdAt: p.CreatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		note.setID(p.ID),
		note.setOrderID(p.OrderID),
		note.setNumber(p.Number),
		p.Status.Validate(),
		note.setEntries(p.Entries),
	); err != nil {
		return nil, err
	}

	if p.Status.IsReversed() != (p.ReversedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"reversal is invalid",
			fmt.Errorf("status %s does not match reversal timestamp", p.Status),
		)
	}

	note.status = p.Status
	note.dispatchDate = copyTime(p.DispatchDate)
	note.deliveryDate = copyTime(p.DeliveryDate)
	note.reversedAt = copyTime(p.ReversedAt)
	return note, nil
}

func (n *Note) Validate() error {
	if n == nil {
		return ErrNoteIsNotConstructed
	}
	return n.guard.Validate(ErrNoteIsNotConstructed)
}

func (n *Note) ID() kernel.UUID {
	return n.id
}

func (n *Note) OrderID() kernel.UUID {
	return n.orderID
}

func (n *Note) Number() Number {
	return n.number
}

func (n *Note) Status() Status {
	return n.status
}

func (n *Note) DispatchDate() *time.Time {
	return copyTime(n.dispatchDate)
}

func (n *Note) DeliveryDate() *time.Time {
	return copyTime(n.deliveryDate)
}

// ReversedAt is set once the note's effect has been returned to stock.
func (n *Note) ReversedAt() *time.Time {
	return copyTime(n.reversedAt)
}

func (n *Note) CreatedAt() time.Time {
	return n.createdAt
}

// Entries returns a copy of the shipped lines in creation order.
func (n *Note) Entries() []Entry {
	out := make([]Entry, len(n.entries))
	copy(out, n.entries)
	return out
}

// IsReversed is true once the note no longer counts as shipped.
func (n *Note) IsReversed() bool {
	return n.status.IsReversed()
}

func (n *Note) TotalQuantity() int {
	total := 0
	for _, e := range n.entries {
		total += e.Quantity()
	}
	return total
}

// Transition applies one step of the state machine at time at.
//
// On success into RETURNED it returns the entries whose quantities must go
// back to stock and come off the order aggregate; for every other target the
// returned slice is nil. A rejected transition leaves the note untouched.
func (n *Note) Transition(to Status, at time.Time) ([]Entry, error) {
	from := n.status
	if !from.CanTransitionTo(to) {
		return nil, errs.NewInvalidTransitionError(from, to)
	}
	if to.IsReversed() && n.reversedAt != nil {
		return nil, fmt.Errorf("%w: %w", errs.NewInvalidTransitionError(from, to), ErrAlreadyReversed)
	}

	var reversal []Entry
	switch to {
	case Dispatched:
		if n.dispatchDate == nil {
			n.dispatchDate = copyTime(&at)
		}
	case Delivered:
		n.deliveryDate = copyTime(&at)
	case Returned:
		n.reversedAt = copyTime(&at)
		reversal = n.Entries()
	case Rejected, Draft, Unknown:
	}

	n.status = to
	n.record(StatusChangedEvent{
		NoteID:   n.id,
		OrderID:  n.orderID,
		From:     from,
		To:       to,
		Reversed: reversal != nil,
		At:       at,
	})

	return reversal, nil
}

// DomainEvents returns events recorded since the last ClearDomainEvents.
func (n *Note) DomainEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(n.events))
	copy(out, n.events)
	return out
}

func (n *Note) ClearDomainEvents() {
	n.events = nil
}

func (n *Note) record(event kernel.DomainEvent) {
	n.events = append(n.events, event)
}

func (n *Note) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Note) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.orderID = id
	return nil
}

func (n *Note) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	n.number = number
	return nil
}

func (n *Note) setEntries(entries []Entry) error {
	if len(entries) == 0 {
		return ErrEntriesAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(entries))
	for _, e := range entries {
		if err := e.LineItemID().Validate(); err != nil {
			return err
		}
		if e.Quantity() <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"entry quantity is invalid",
				fmt.Errorf("%d is not greater than 0", e.Quantity()),
			)
		}
		if _, dup := seen[e.LineItemID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"entries are invalid",
				fmt.Errorf("line item %s appears twice", e.LineItemID()),
			)
		}
		seen[e.LineItemID()] = struct{}{}
	}

	n.entries = append([]Entry(nil), entries...)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
