package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// dispatchExecutor is the single writer of new shipments. It runs inside a
// unit of work opened by the calling handler and never commits.
//
// Lock order, shared by every ledger write: order row, then the dispatch
// note row (transitions only), then stock rows by ascending catalog item ID.
type dispatchExecutor struct {
	planner  services.FulfillmentPlanner
	policy   services.DispatchPolicy
	settings LedgerSettings
}

func newDispatchExecutor(settings LedgerSettings) dispatchExecutor {
	return dispatchExecutor{
		planner:  services.NewFulfillmentPlanner(),
		policy:   services.NewDispatchPolicy(),
		settings: settings,
	}
}

type shipment struct {
	lines        []services.RequestedLine
	status       dispatch.Status
	dispatchDate *time.Time
	deliveryDate *time.Time
}

// lockOrder takes the order row lock, rejects orders that cannot ship and
// plans against the notes stored under that lock.
func (e dispatchExecutor) lockOrder(ctx context.Context, uow LedgerUoW, orderID kernel.UUID) (*order.Order, services.Plan, error) {
	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, services.Plan{}, err
	}
	if err = o.ValidateDispatchable(); err != nil {
		return nil, services.Plan{}, err
	}

	notes, err := uow.DispatchNoteRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, services.Plan{}, err
	}

	plan, err := e.planner.ComputeRemaining(o, notes)
	if err != nil {
		return nil, services.Plan{}, err
	}
	return o, plan, nil
}

// execute validates the shipment against the locked order and stock, then
// writes stock, the order aggregate and the new note. Every check runs
// before the first write.
func (e dispatchExecutor) execute(
	ctx context.Context,
	uow LedgerUoW,
	o *order.Order,
	plan services.Plan,
	req shipment,
) (*dispatch.Note, error) {
	entries, err := e.policy.Resolve(o, plan, req.lines)
	if err != nil {
		return nil, err
	}

	if err = o.RefreshDispatchedQuantity(plan.TotalDispatched()); err != nil {
		return nil, err
	}
	if err = o.RecordDispatch(totalQuantity(entries)); err != nil {
		return nil, err
	}

	need := byCatalogItem(entries)
	stocks, err := lockStock(ctx, uow, need)
	if err != nil {
		return nil, err
	}
	if err = ensureStock(stocks, need); err != nil {
		return nil, err
	}
	for _, stock := range stocks {
		if err = stock.Withdraw(need[stock.CatalogItemID()]); err != nil {
			return nil, err
		}
	}

	now := e.settings.now()
	ordinal, err := uow.DispatchSequence().Next(ctx, dispatch.DayWindow(now))
	if err != nil {
		return nil, err
	}
	number, err := dispatch.NewNumber(e.settings.prefix(), now, ordinal)
	if err != nil {
		return nil, err
	}

	note, err := dispatch.NewNote(dispatch.NewNoteParams{
		ID:           kernel.NewUUID(),
		OrderID:      o.ID(),
		Number:       number,
		Status:       req.status,
		DispatchDate: req.dispatchDate,
		DeliveryDate: req.deliveryDate,
		Entries:      entries,
	}, now)
	if err != nil {
		return nil, err
	}

	for _, stock := range stocks {
		if err = uow.StockRepository().Update(ctx, stock); err != nil {
			return nil, err
		}
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.DispatchNoteRepository().Add(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// lockStock locks the stock rows of the given catalog items. The repository
// sorts.
func lockStock(ctx context.Context, uow StockRepoFactory, need map[kernel.UUID]int) ([]*inventory.Stock, error) {
	ids := make([]kernel.UUID, 0, len(need))
	for id := range need {
		ids = append(ids, id)
	}
	return uow.StockRepository().GetForUpdate(ctx, ids...)
}

// ensureStock checks every catalog item before anything is withdrawn. Lines
// sharing a catalog item draw from the same row.
func ensureStock(stocks []*inventory.Stock, need map[kernel.UUID]int) error {
	found := make(map[kernel.UUID]struct{}, len(stocks))
	for _, stock := range stocks {
		found[stock.CatalogItemID()] = struct{}{}
		if err := stock.EnsureAvailable(need[stock.CatalogItemID()]); err != nil {
			return err
		}
	}
	for id := range need {
		if _, ok := found[id]; !ok {
			return errs.NewObjectNotFoundError("catalogItemID", id)
		}
	}
	return nil
}

func byCatalogItem(entries []dispatch.Entry) map[kernel.UUID]int {
	need := make(map[kernel.UUID]int, len(entries))
	for _, entry := range entries {
		need[entry.CatalogItemID()] += entry.Quantity()
	}
	return need
}

func totalQuantity(entries []dispatch.Entry) int {
	total := 0
	for _, entry := range entries {
		total += entry.Quantity()
	}
	return total
}
