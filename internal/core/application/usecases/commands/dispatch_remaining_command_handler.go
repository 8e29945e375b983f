package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

// DispatchRemainingCommandHandler ships the full remainder of an order.
//
// Lines with nothing left are dropped; when no line remains the order is
// already fulfilled. Stock for every remaining line is verified before the
// shipment is attempted, so a shortage on one item never produces a partial
// note.
//
// Errors:
//   - errs.ErrAlreadyFulfilled: nothing left to ship
//   - errs.ErrInsufficientStock: some remaining line cannot be covered
//   - plus everything CreateDispatchCommandHandler can return
type DispatchRemainingCommandHandler struct {
	uowFactory LedgerUoWFactory
	executor   dispatchExecutor
}

func NewDispatchRemainingCommandHandler(uowFactory LedgerUoWFactory, settings LedgerSettings) DispatchRemainingCommandHandler {
	return DispatchRemainingCommandHandler{
		uowFactory: uowFactory,
		executor:   newDispatchExecutor(settings),
	}
}

func (h DispatchRemainingCommandHandler) Handle(ctx context.Context, cmd DispatchRemainingCommand) (note *dispatch.Note, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "commands.dispatch_remaining")
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

	outstanding := plan.Outstanding()
	if len(outstanding) == 0 {
		return nil, errs.NewAlreadyFulfilledError(o.ID().String())
	}

	need := make(map[kernel.UUID]int, len(outstanding))
	lines := make([]services.RequestedLine, 0, len(outstanding))
	for _, line := range outstanding {
		need[line.CatalogItemID] += line.Remaining
		lines = append(lines, services.RequestedLine{LineItemID: line.LineItemID, Quantity: line.Remaining})
	}

	stocks, err := lockStock(ctx, uow, need)
	if err != nil {
		return nil, err
	}
	if err = ensureStock(stocks, need); err != nil {
		return nil, err
	}

	note, err = h.executor.execute(ctx, uow, o, plan, shipment{
		lines:  lines,
		status: dispatch.Dispatched,
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return note, nil
}
