package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var ErrOrderIsRequired = errors.New("order is required")

// LinePlan is the fulfillment state of one order line.
type LinePlan struct {
	LineItemID    kernel.UUID
	CatalogItemID kernel.UUID
	Ordered       int
	Dispatched    int
	Remaining     int
}

// Plan is the fulfillment state of a whole order, lines in order sequence.
type Plan struct {
	OrderID kernel.UUID
	Lines   []LinePlan
}

// Line looks up the plan of one line item.
func (p Plan) Line(lineItemID kernel.UUID) (LinePlan, bool) {
	for _, line := range p.Lines {
		if line.LineItemID.IsEqual(lineItemID) {
			return line, true
		}
	}
	return LinePlan{}, false
}

func (p Plan) TotalOrdered() int {
	total := 0
	for _, line := range p.Lines {
		total += line.Ordered
	}
	return total
}

// TotalDispatched is the authoritative order-level dispatched quantity.
func (p Plan) TotalDispatched() int {
	total := 0
	for _, line := range p.Lines {
		total += line.Dispatched
	}
	return total
}

func (p Plan) TotalRemaining() int {
	total := 0
	for _, line := range p.Lines {
		total += line.Remaining
	}
	return total
}

// Outstanding returns only the lines that still have something to ship.
func (p Plan) Outstanding() []LinePlan {
	var out []LinePlan
	for _, line := range p.Lines {
		if line.Remaining > 0 {
			out = append(out, line)
		}
	}
	return out
}

// FulfillmentPlanner derives what is left to ship from an order and its notes.
type FulfillmentPlanner struct{}

func NewFulfillmentPlanner() FulfillmentPlanner {
	return FulfillmentPlanner{}
}

// ComputeRemaining sums, per line, the entries of every note of the order
// that is not RETURNED. Notes of other orders and entries for unknown lines
// are ignored. Remaining never goes below zero.
func (FulfillmentPlanner) ComputeRemaining(o *order.Order, notes []*dispatch.Note) (Plan, error) {
	if err := o.Validate(); err != nil {
		return Plan{}, errors.Join(ErrOrderIsRequired, err)
	}

	shipped := make(map[kernel.UUID]int)
	for _, note := range notes {
		if note == nil || note.IsReversed() || !note.OrderID().IsEqual(o.ID()) {
			continue
		}
		for _, entry := range note.Entries() {
			shipped[entry.LineItemID()] += entry.Quantity()
		}
	}

	lines := o.LineItems()
	plan := Plan{OrderID: o.ID(), Lines: make([]LinePlan, 0, len(lines))}
	for _, item := range lines {
		dispatched := shipped[item.ID()]
		plan.Lines = append(plan.Lines, LinePlan{
			LineItemID:    item.ID(),
			CatalogItemID: item.CatalogItemID(),
			Ordered:       item.OrderedQuantity(),
			Dispatched:    dispatched,
			Remaining:     max(item.OrderedQuantity()-dispatched, 0),
		})
	}

	return plan, nil
}
