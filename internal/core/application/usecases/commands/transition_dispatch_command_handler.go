package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"go.opentelemetry.io/otel/attribute"
)

// TransitionDispatchCommandHandler applies one step of the dispatch note
// state machine. Moving a note into RETURNED also puts its quantities back
// into stock and takes them off the order aggregate, in the same
// transaction. A rejected transition changes nothing.
//
// Errors:
//   - errs.ErrObjectNotFound: note (or its order) missing
//   - errs.ErrInvalidTransition: the step is not in the transition table
type TransitionDispatchCommandHandler struct {
	uowFactory LedgerUoWFactory
	planner    services.FulfillmentPlanner
	settings   LedgerSettings
}

func NewTransitionDispatchCommandHandler(uowFactory LedgerUoWFactory, settings LedgerSettings) TransitionDispatchCommandHandler {
	return TransitionDispatchCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewFulfillmentPlanner(),
		settings:   settings,
	}
}

func (h TransitionDispatchCommandHandler) Handle(ctx context.Context, cmd TransitionDispatchCommand) (note *dispatch.Note, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "commands.transition_dispatch")
	span.SetAttributes(
		attribute.String("dispatch.id", cmd.NoteID().String()),
		attribute.String("dispatch.target", cmd.Target().String()),
	)
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	noteRepo := uow.DispatchNoteRepository()
	orderRepo := uow.OrderRepository()

	// The note's order is read first so the order row can be locked before
	// the note row.
	unlocked, err := noteRepo.Get(ctx, cmd.NoteID())
	if err != nil {
		return nil, err
	}
	o, err := orderRepo.GetForUpdate(ctx, unlocked.OrderID())
	if err != nil {
		return nil, err
	}
	note, err = noteRepo.GetForUpdate(ctx, cmd.NoteID())
	if err != nil {
		return nil, err
	}

	// Derived from the stored notes before this one changes status.
	notes, err := noteRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	plan, err := h.planner.ComputeRemaining(o, notes)
	if err != nil {
		return nil, err
	}

	reversal, err := note.Transition(cmd.Target(), h.settings.now())
	if err != nil {
		return nil, err
	}

	if len(reversal) > 0 {
		if err = h.reverse(ctx, uow, o, plan, reversal); err != nil {
			return nil, err
		}
	}

	if err = noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return note, nil
}

// reverse restores stock and the order aggregate for the entries of a
// returned note.
func (h TransitionDispatchCommandHandler) reverse(
	ctx context.Context,
	uow LedgerUoW,
	o *order.Order,
	plan services.Plan,
	entries []dispatch.Entry,
) error {
	if err := o.RefreshDispatchedQuantity(plan.TotalDispatched()); err != nil {
		return err
	}
	if err := o.RevertDispatch(totalQuantity(entries)); err != nil {
		return err
	}

	need := byCatalogItem(entries)
	stocks, err := lockStock(ctx, uow, need)
	if err != nil {
		return err
	}
	for _, stock := range stocks {
		if err = stock.Restock(need[stock.CatalogItemID()]); err != nil {
			return err
		}
		if err = uow.StockRepository().Update(ctx, stock); err != nil {
			return err
		}
	}

	return uow.OrderRepository().Update(ctx, o)
}
