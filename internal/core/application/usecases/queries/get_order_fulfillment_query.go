package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderFulfillmentQueryIsNotConstructed = errors.New(
	"GetOrderFulfillmentQuery must be created via NewGetOrderFulfillmentQuery constructor",
)

// GetOrderFulfillmentQuery reports ordered, dispatched and remaining
// quantities per line of one order.
type GetOrderFulfillmentQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderFulfillmentQuery(orderID kernel.UUID) (GetOrderFulfillmentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderFulfillmentQuery{}, err
	}
	return GetOrderFulfillmentQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderFulfillmentQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderFulfillmentQueryIsNotConstructed)
}

func (q GetOrderFulfillmentQuery) OrderID() kernel.UUID {
	return q.orderID
}

type LineFulfillment struct {
	LineItemID         kernel.UUID
	CatalogItemID      kernel.UUID
	OrderedQuantity    int
	DispatchedQuantity int
	RemainingQuantity  int
}

type GetOrderFulfillmentQueryResponse struct {
	Summary OrderSummary
	Lines   []LineFulfillment
}
