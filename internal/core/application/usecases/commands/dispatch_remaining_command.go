package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchRemainingCommandIsNotConstructed = errors.New(
	"DispatchRemainingCommand must be created via NewDispatchRemainingCommand constructor",
)

// DispatchRemainingCommand ships everything still outstanding on an order in
// a single DISPATCHED note.
type DispatchRemainingCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDispatchRemainingCommand(orderID kernel.UUID) (DispatchRemainingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DispatchRemainingCommand{}, err
	}
	return DispatchRemainingCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchRemainingCommand) Validate() error {
	return c.guard.Validate(ErrDispatchRemainingCommandIsNotConstructed)
}

func (c DispatchRemainingCommand) OrderID() kernel.UUID {
	return c.orderID
}
