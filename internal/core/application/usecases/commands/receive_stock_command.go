package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReceiveStockCommandIsNotConstructed = errors.New(
	"ReceiveStockCommand must be created via NewReceiveStockCommand constructor",
)

// ReceiveStockCommand books goods received for a catalog item.
type ReceiveStockCommand struct { //nolint:recvcheck //using for validation
	catalogItemID kernel.UUID
	quantity      int

	guard guard.ConstructorGuard
}

func NewReceiveStockCommand(catalogItemID kernel.UUID, quantity int) (ReceiveStockCommand, error) {
	cmd := ReceiveStockCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setCatalogItemID(catalogItemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return ReceiveStockCommand{}, err
	}

	return cmd, nil
}

func (c ReceiveStockCommand) Validate() error {
	return c.guard.Validate(ErrReceiveStockCommandIsNotConstructed)
}

func (c ReceiveStockCommand) CatalogItemID() kernel.UUID {
	return c.catalogItemID
}

func (c ReceiveStockCommand) Quantity() int {
	return c.quantity
}

func (c *ReceiveStockCommand) setCatalogItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.catalogItemID = id
	return nil
}

func (c *ReceiveStockCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"received quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	c.quantity = quantity
	return nil
}
