package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrNumberIsRequired   = errs.NewValueIsRequiredError("number")
	ErrOrderLinesRequired = errs.NewValueIsRequiredError("line items")
	ErrOrderLineIsInvalid = errs.NewValueIsInvalidError("order line")
)

// OrderLine is one product line of an order being registered.
type OrderLine struct {
	LineItemID    kernel.UUID
	CatalogItemID kernel.UUID
	Quantity      int
	UnitPrice     decimal.Decimal
}

// CreateOrderCommand registers a purchase order handed over by order
// management. The order starts OPEN with nothing dispatched.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(orderID, "PO-2024-0042", []OrderLine{
//	    {LineItemID: kernel.NewUUID(), CatalogItemID: itemID, Quantity: 100, UnitPrice: decimal.NewFromInt(12)},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	number  string
	lines   []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the ID, the reference number and every
// line. All problems are reported together.
func NewCreateOrderCommand(orderID kernel.UUID, number string, lines []OrderLine) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setNumber(number),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number is the external purchase order reference.
func (c CreateOrderCommand) Number() string {
	return c.number
}

func (c CreateOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrNumberIsRequired
	}

	c.number = number
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesRequired
	}

	for i, line := range lines {
		if line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: line %d: quantity %d, unit price %s",
				ErrOrderLineIsInvalid, i, line.Quantity, line.UnitPrice.String())
		}
	}

	c.lines = append([]OrderLine(nil), lines...)
	return nil
}
