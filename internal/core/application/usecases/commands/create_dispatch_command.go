package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateDispatchCommandIsNotConstructed = errors.New(
		"CreateDispatchCommand must be created via NewCreateDispatchCommand constructor",
	)
	ErrDispatchLinesAreRequired = errs.NewValueIsRequiredError("entries")
)

// DispatchLine is one requested line of a shipment.
type DispatchLine struct {
	LineItemID kernel.UUID
	Quantity   int
}

// CreateDispatchCommand ships part (or all) of an order in one note.
//
// Example:
//
//	cmd, err := NewCreateDispatchCommand(orderID, []DispatchLine{
//	    {LineItemID: lineA, Quantity: 40},
//	}, dispatch.Dispatched, nil, nil)
//	if err != nil {
//	    return err
//	}
//	note, err := handler.Handle(ctx, cmd)
type CreateDispatchCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	lines        []DispatchLine
	status       dispatch.Status
	dispatchDate *time.Time
	deliveryDate *time.Time

	guard guard.ConstructorGuard
}

// NewCreateDispatchCommand validates the request shape. status may be
// dispatch.Unknown, meaning DRAFT. Bounds against the order and stock are
// checked by the handler.
func NewCreateDispatchCommand(
	orderID kernel.UUID,
	lines []DispatchLine,
	status dispatch.Status,
	dispatchDate *time.Time,
	deliveryDate *time.Time,
) (CreateDispatchCommand, error) {
	cmd := CreateDispatchCommand{
		dispatchDate: dispatchDate,
		deliveryDate: deliveryDate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
		cmd.setStatus(status),
		dispatch.ValidateInitialDates(status, dispatchDate, deliveryDate),
	); err != nil {
		return CreateDispatchCommand{}, err
	}

	return cmd, nil
}

func (c CreateDispatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateDispatchCommandIsNotConstructed)
}

func (c CreateDispatchCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateDispatchCommand) Lines() []DispatchLine {
	out := make([]DispatchLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Status is the initial note status; Unknown means DRAFT.
func (c CreateDispatchCommand) Status() dispatch.Status {
	return c.status
}

func (c CreateDispatchCommand) DispatchDate() *time.Time {
	return c.dispatchDate
}

func (c CreateDispatchCommand) DeliveryDate() *time.Time {
	return c.deliveryDate
}

func (c *CreateDispatchCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateDispatchCommand) setLines(lines []DispatchLine) error {
	if len(lines) == 0 {
		return ErrDispatchLinesAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, line := range lines {
		if err := line.LineItemID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"entry quantity is invalid",
				fmt.Errorf("line item %s: %d is not greater than 0", line.LineItemID, line.Quantity),
			)
		}
		if _, dup := seen[line.LineItemID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"entries are invalid",
				fmt.Errorf("line item %s requested twice", line.LineItemID),
			)
		}
		seen[line.LineItemID] = struct{}{}
	}

	c.lines = append([]DispatchLine(nil), lines...)
	return nil
}

func (c *CreateDispatchCommand) setStatus(status dispatch.Status) error {
	if status == dispatch.Unknown {
		c.status = dispatch.Draft
		return nil
	}
	if err := status.ValidateInitial(); err != nil {
		return err
	}
	c.status = status
	return nil
}
