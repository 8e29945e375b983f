package queries

import (
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Classification buckets an order by how much of it has shipped.
type Classification string

const (
	NotDispatched Classification = "NOT_DISPATCHED"
	Partial       Classification = "PARTIAL"
	Full          Classification = "FULL"
)

// valuePlaces matches the scale of order_line_items.unit_price.
const valuePlaces = 4

// Classify compares dispatched against ordered totals only.
func Classify(ordered, dispatched int) Classification {
	switch {
	case dispatched <= 0:
		return NotDispatched
	case dispatched >= ordered:
		return Full
	default:
		return Partial
	}
}

// OrderSummary is the roll-up of one order.
type OrderSummary struct {
	OrderID            kernel.UUID
	Number             string
	Status             string
	OrderedQuantity    int
	OrderedValue       decimal.Decimal
	DispatchedQuantity int
	DispatchedValue    decimal.Decimal
	RemainingQuantity  int
	Classification     Classification
}

// NewOrderSummary derives the dispatched value pro rata:
// orderedValue * dispatched / ordered.
func NewOrderSummary(
	orderID kernel.UUID,
	number, status string,
	ordered int,
	orderedValue decimal.Decimal,
	dispatched int,
) OrderSummary {
	dispatchedValue := decimal.Zero
	if ordered > 0 && dispatched > 0 {
		dispatchedValue = orderedValue.
			Mul(decimal.NewFromInt(int64(dispatched))).
			Div(decimal.NewFromInt(int64(ordered))).
			Round(valuePlaces)
	}

	return OrderSummary{
		OrderID:            orderID,
		Number:             number,
		Status:             status,
		OrderedQuantity:    ordered,
		OrderedValue:       orderedValue,
		DispatchedQuantity: dispatched,
		DispatchedValue:    dispatchedValue,
		RemainingQuantity:  max(ordered-dispatched, 0),
		Classification:     Classify(ordered, dispatched),
	}
}
