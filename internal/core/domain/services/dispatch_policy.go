package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// RequestedLine is one line of a shipment request.
type RequestedLine struct {
	LineItemID kernel.UUID
	Quantity   int
}

// DispatchPolicy checks a shipment request against an order and its current
// plan and turns it into note entries.
type DispatchPolicy struct{}

func NewDispatchPolicy() DispatchPolicy {
	return DispatchPolicy{}
}

// Resolve validates the requested lines in request order and returns the
// matching entries. It fails with:
//   - ValueIsRequiredError when nothing is requested
//   - ValueIsInvalidError for a non-positive quantity or a repeated line
//   - ObjectNotFoundError for a line that is not part of the order
//   - QuantityExceededError (line scope) when a line would be over-shipped
//
// The order-level bound and stock are checked by the caller against the
// locked aggregates.
func (DispatchPolicy) Resolve(o *order.Order, plan Plan, requested []RequestedLine) ([]dispatch.Entry, error) {
	if len(requested) == 0 {
		return nil, errs.NewValueIsRequiredError("entries")
	}

	seen := make(map[kernel.UUID]struct{}, len(requested))
	entries := make([]dispatch.Entry, 0, len(requested))
	for _, req := range requested {
		if req.Quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"entry quantity is invalid",
				fmt.Errorf("line item %s: %d is not greater than 0", req.LineItemID, req.Quantity),
			)
		}
		if _, dup := seen[req.LineItemID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"entries are invalid",
				fmt.Errorf("line item %s requested twice", req.LineItemID),
			)
		}
		seen[req.LineItemID] = struct{}{}

		item, ok := o.LineItem(req.LineItemID)
		if !ok {
			return nil, errs.NewObjectNotFoundErrorWithCause(
				"lineItemID", req.LineItemID,
				fmt.Errorf("not a line of order %s", o.ID()),
			)
		}

		line, ok := plan.Line(req.LineItemID)
		if !ok {
			line = LinePlan{Ordered: item.OrderedQuantity()}
		}
		if req.Quantity > item.OrderedQuantity()-line.Dispatched {
			return nil, errs.NewQuantityExceededError(
				errs.ScopeLine, req.LineItemID.String(),
				item.OrderedQuantity(), line.Dispatched, req.Quantity,
			)
		}

		entry, err := dispatch.NewEntry(item.ID(), item.CatalogItemID(), req.Quantity)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
