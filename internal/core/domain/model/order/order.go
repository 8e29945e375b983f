package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrNumberIsRequired is returned for an order without an external reference number.
	ErrNumberIsRequired = errs.NewValueIsRequiredError("number")
	// ErrLineItemsAreRequired is returned for an order without lines.
	ErrLineItemsAreRequired = errs.NewValueIsRequiredError("line items")
)

// Order is the buyer purchase order being fulfilled. Upstream order
// management owns its lines and status; the ledger only moves the cached
// aggregate dispatched quantity, always inside the same transaction that
// writes the dispatch notes it is derived from.
//
// Invariants:
//   - At least one line item, each with a distinct ID
//   - 0 <= dispatchedQuantity <= TotalOrderedQuantity()
type Order struct {
	id                 kernel.UUID
	number             string
	status             Status
	lineItems          []*LineItem
	dispatchedQuantity int

	isConstructed bool
}

// NewOrder creates an Open order with nothing dispatched yet.
//
// Example:
//
//	line, _ := order.NewLineItem(kernel.NewUUID(), catalogItemID, 100, decimal.NewFromInt(12))
//	o, err := order.NewOrder(kernel.NewUUID(), "PO-2024-0042", []*order.LineItem{line})
func NewOrder(id kernel.UUID, number string, lineItems []*LineItem) (*Order, error) {
	return RestoreOrder(id, number, Open, lineItems, 0)
}

// RestoreOrder rebuilds an order from persistence, re-validating every
// invariant.
func RestoreOrder(
	id kernel.UUID,
	number string,
	status Status,
	lineItems []*LineItem,
	dispatchedQuantity int,
) (*Order, error) {
	order := &Order{isConstructed: true}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setStatus(status),
		order.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	if err := order.setDispatchedQuantity(dispatchedQuantity); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number is the human-readable purchase order reference.
func (o *Order) Number() string {
	return o.number
}

func (o *Order) Status() Status {
	return o.status
}

// LineItems returns the lines in their original order. The slice is a copy.
func (o *Order) LineItems() []*LineItem {
	out := make([]*LineItem, len(o.lineItems))
	copy(out, o.lineItems)
	return out
}

// LineItem looks a line up by ID.
func (o *Order) LineItem(id kernel.UUID) (*LineItem, bool) {
	for _, item := range o.lineItems {
		if item.ID().IsEqual(id) {
			return item, true
		}
	}
	return nil, false
}

// DispatchedQuantity is the cached order-level aggregate of shipped units.
func (o *Order) DispatchedQuantity() int {
	return o.dispatchedQuantity
}

func (o *Order) TotalOrderedQuantity() int {
	total := 0
	for _, item := range o.lineItems {
		total += item.OrderedQuantity()
	}
	return total
}

func (o *Order) TotalOrderedValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.lineItems {
		total = total.Add(item.OrderedValue())
	}
	return total
}

// ValidateDispatchable rejects orders that cannot receive shipments.
func (o *Order) ValidateDispatchable() error {
	return o.status.ValidateDispatchable()
}

// RefreshDispatchedQuantity overwrites the cached aggregate with a value
// derived from stored dispatch entries. The derived value is authoritative.
func (o *Order) RefreshDispatchedQuantity(derived int) error {
	return o.setDispatchedQuantity(derived)
}

// RecordDispatch adds quantity to the aggregate. It fails with a
// QuantityExceededError (order scope) if the total ordered quantity would be
// overrun.
func (o *Order) RecordDispatch(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"dispatch quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	total := o.TotalOrderedQuantity()
	if quantity > total-o.dispatchedQuantity {
		return errs.NewQuantityExceededError(errs.ScopeOrder, o.id.String(), total, o.dispatchedQuantity, quantity)
	}

	o.dispatchedQuantity += quantity
	return nil
}

// RevertDispatch removes quantity from the aggregate when a shipment comes back.
func (o *Order) RevertDispatch(quantity int) error {
	if quantity <= 0 || quantity > o.dispatchedQuantity {
		return errs.NewValueIsOutOfRangeError("reverted quantity", quantity, 1, o.dispatchedQuantity)
	}

	o.dispatchedQuantity -= quantity
	return nil
}

// Cancel moves the order to Cancelled. Upstream-owned; exposed for
// order-management integrations and tests.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setLineItems(lineItems []*LineItem) error {
	if len(lineItems) == 0 {
		return ErrLineItemsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(lineItems))
	for _, item := range lineItems {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"line items are invalid",
				fmt.Errorf("line item %s appears twice", item.ID()),
			)
		}
		seen[item.ID()] = struct{}{}
	}

	o.lineItems = append([]*LineItem(nil), lineItems...)
	return nil
}

func (o *Order) setDispatchedQuantity(quantity int) error {
	if total := o.TotalOrderedQuantity(); quantity < 0 || quantity > total {
		return errs.NewValueIsOutOfRangeError("dispatched quantity", quantity, 0, total)
	}
	o.dispatchedQuantity = quantity
	return nil
}
