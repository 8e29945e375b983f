package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/services"

	"go.opentelemetry.io/otel/attribute"
)

// CreateDispatchCommandHandler records a new shipment against an order.
//
// Within one transaction it locks the order, derives what each line has
// already shipped, checks the line bound, the order aggregate bound and the
// stock of every catalog item, then withdraws stock, bumps the order
// aggregate and stores the note under the next number of the day.
//
// Errors:
//   - errs.ErrObjectNotFound: order, line item or stock row missing
//   - errs.ErrValidation: bad entries, order not open, quantity over ordered
//   - errs.ErrInsufficientStock: available stock below the request
type CreateDispatchCommandHandler struct {
	uowFactory LedgerUoWFactory
	executor   dispatchExecutor
}

func NewCreateDispatchCommandHandler(uowFactory LedgerUoWFactory, settings LedgerSettings) CreateDispatchCommandHandler {
	return CreateDispatchCommandHandler{
		uowFactory: uowFactory,
		executor:   newDispatchExecutor(settings),
	}
}

func (h CreateDispatchCommandHandler) Handle(ctx context.Context, cmd CreateDispatchCommand) (note *dispatch.Note, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "commands.create_dispatch")
	span.SetAttributes(attribute.String("order.id", cmd.OrderID().String()))
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, plan, err := h.executor.lockOrder(ctx, uow, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	lines := make([]services.RequestedLine, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		lines = append(lines, services.RequestedLine{LineItemID: line.LineItemID, Quantity: line.Quantity})
	}

	note, err = h.executor.execute(ctx, uow, o, plan, shipment{
		lines:        lines,
		status:       cmd.Status(),
		dispatchDate: cmd.DispatchDate(),
		deliveryDate: cmd.DeliveryDate(),
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("dispatch.number", note.Number().String()))
	return note, nil
}
