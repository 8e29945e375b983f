package commands_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var errNoTransaction = errors.New("no active transaction")

// memoryLedger is an in-memory store with the isolation the ledger relies
// on: one transaction at a time, all or nothing on commit. Aggregates are
// stored as rows and rebuilt on every read, the way the SQL repositories do.
type memoryLedger struct {
	gate  sync.Mutex
	mu    sync.Mutex
	state ledgerState

	published []kernel.DomainEvent
}

type orderRow struct {
	id         kernel.UUID
	number     string
	status     order.Status
	lines      []*order.LineItem
	dispatched int
}

type ledgerState struct {
	orders    map[kernel.UUID]orderRow
	stocks    map[kernel.UUID]int
	notes     map[kernel.UUID]dispatch.RestoreNoteParams
	noteOrder []kernel.UUID
	sequences map[string]int64
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{state: ledgerState{
		orders:    map[kernel.UUID]orderRow{},
		stocks:    map[kernel.UUID]int{},
		notes:     map[kernel.UUID]dispatch.RestoreNoteParams{},
		sequences: map[string]int64{},
	}}
}

func (s ledgerState) clone() ledgerState {
	c := ledgerState{
		orders:    make(map[kernel.UUID]orderRow, len(s.orders)),
		stocks:    make(map[kernel.UUID]int, len(s.stocks)),
		notes:     make(map[kernel.UUID]dispatch.RestoreNoteParams, len(s.notes)),
		noteOrder: slices.Clone(s.noteOrder),
		sequences: make(map[string]int64, len(s.sequences)),
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.notes {
		c.notes[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

func (l *memoryLedger) snapshot() ledgerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

func (l *memoryLedger) events() []kernel.DomainEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.published)
}

func (l *memoryLedger) stock(id kernel.UUID) int {
	return l.snapshot().stocks[id]
}

func (l *memoryLedger) dispatched(id kernel.UUID) int {
	return l.snapshot().orders[id].dispatched
}

func (l *memoryLedger) noteCount() int {
	return len(l.snapshot().notes)
}

func (l *memoryLedger) seedOrder(o *order.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.orders[o.ID()] = toOrderRow(o)
}

func (l *memoryLedger) seedStock(catalogItemID kernel.UUID, available int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.stocks[catalogItemID] = available
}

// Factories for every UoW shape the handlers use.

func (l *memoryLedger) Create() commands.LedgerUoW {
	return &memoryUoW{ledger: l}
}

type memoryOrderUoWFactory struct{ ledger *memoryLedger }

func (f memoryOrderUoWFactory) Create() commands.OrderUoW {
	return &memoryUoW{ledger: f.ledger}
}

type memoryStockUoWFactory struct{ ledger *memoryLedger }

func (f memoryStockUoWFactory) Create() commands.StockUoW {
	return &memoryUoW{ledger: f.ledger}
}

type memoryUoW struct {
	ledger  *memoryLedger
	tx      *ledgerState
	tracked []kernel.EventSource
}

func (u *memoryUoW) Begin(_ context.Context) error {
	u.ledger.gate.Lock()
	state := u.ledger.snapshot()
	u.tx = &state
	return nil
}

func (u *memoryUoW) Commit(_ context.Context) error {
	if u.tx == nil {
		return errNoTransaction
	}

	u.ledger.mu.Lock()
	u.ledger.state = *u.tx
	for _, source := range u.tracked {
		u.ledger.published = append(u.ledger.published, source.DomainEvents()...)
		source.ClearDomainEvents()
	}
	u.ledger.mu.Unlock()

	u.tx = nil
	u.tracked = nil
	u.ledger.gate.Unlock()
	return nil
}

func (u *memoryUoW) Rollback(_ context.Context) error {
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.tracked = nil
	u.ledger.gate.Unlock()
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return memoryOrderRepo{u}
}

func (u *memoryUoW) StockRepository() ports.StockRepository {
	return memoryStockRepo{u}
}

func (u *memoryUoW) DispatchNoteRepository() ports.DispatchNoteRepository {
	return memoryNoteRepo{u}
}

func (u *memoryUoW) DispatchSequence() ports.DispatchSequence {
	return memorySequence{u}
}

func (u *memoryUoW) state() (*ledgerState, error) {
	if u.tx == nil {
		return nil, errNoTransaction
	}
	return u.tx, nil
}

func toOrderRow(o *order.Order) orderRow {
	return orderRow{
		id:         o.ID(),
		number:     o.Number(),
		status:     o.Status(),
		lines:      o.LineItems(),
		dispatched: o.DispatchedQuantity(),
	}
}

type memoryOrderRepo struct{ uow *memoryUoW }

func (r memoryOrderRepo) Add(_ context.Context, o *order.Order) error {
	tx, err := r.uow.state()
	if err != nil {
		return err
	}
	if _, ok := tx.orders[o.ID()]; ok {
		return errs.NewObjectConflictError("orderID", o.ID())
	}
	tx.orders[o.ID()] = toOrderRow(o)
	return nil
}

func (r memoryOrderRepo) Update(_ context.Context, o *order.Order) error {
	tx, err := r.uow.state()
	if err != nil {
		return err
	}
	if _, ok := tx.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("orderID", o.ID())
	}
	tx.orders[o.ID()] = toOrderRow(o)
	return nil
}

func (r memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	tx, err := r.uow.state()
	if err != nil {
		return nil, err
	}
	row, ok := tx.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return order.RestoreOrder(row.id, row.number, row.status, row.lines, row.dispatched)
}

func (r memoryOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

type memoryStockRepo struct{ uow *memoryUoW }

func (r memoryStockRepo) Add(_ context.Context, stock *inventory.Stock) error {
	tx, err := r.uow.state()
	if err != nil {
		return err
	}
	if _, ok := tx.stocks[stock.CatalogItemID()]; ok {
		return errs.NewObjectConflictError("catalogItemID", stock.CatalogItemID())
	}
	tx.stocks[stock.CatalogItemID()] = stock.Available()
	return nil
}

func (r memoryStockRepo) Update(_ context.Context, stock *inventory.Stock) error {
	tx, err := r.uow.state()
	if err != nil {
		return err
	}
	tx.stocks[stock.CatalogItemID()] = stock.Available()
	return nil
}

func (r memoryStockRepo) Get(_ context.Context, id kernel.UUID) (*inventory.Stock, error) {
	tx, err := r.uow.state()
	if err != nil {
		return nil, err
	}
	available, ok := tx.stocks[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("catalogItemID", id)
	}
	return inventory.RestoreStock(id, available)
}

func (r memoryStockRepo) GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*inventory.Stock, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b kernel.UUID) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	sorted = slices.Compact(sorted)

	out := make([]*inventory.Stock, 0, len(sorted))
	for _, id := range sorted {
		stock, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, stock)
	}
	return out, nil
}

type memoryNoteRepo struct{ uow *memoryUoW }

func noteRow(n *dispatch.Note) dispatch.RestoreNoteParams {
	return dispatch.RestoreNoteParams{
		ID:           n.ID(),
		OrderID:      n.OrderID(),
		Number:       n.Number(),
		Status:       n.Status(),
		DispatchDate: n.DispatchDate(),
		DeliveryDate: n.DeliveryDate(),
		ReversedAt:   n.ReversedAt(),
		CreatedAt:    n.CreatedAt(),
		Entries:      n.Entries(),
	}
}

func (r memoryNoteRepo) Add(_ context.Context, n *dispatch.Note) error {
	tx, err := r.uow.state()
	if err != nil {
		return err
	}
	for _, row := range tx.notes {
		if row.Number == n.Number() {
			return errs.NewObjectConflictError("number", n.Number())
		}
	}
	tx.notes[n.ID()] = noteRow(n)
	tx.noteOrder = append(tx.noteOrder, n.ID())
	r.uow.tracked = append(r.uow.tracked, n)
	return nil
}

func (r memoryNoteRepo) Update(_ context.Context, n *dispatch.Note) error {
	tx, err := r.uow.state()
	if err != nil {
		return err
	}
	tx.notes[n.ID()] = noteRow(n)
	r.uow.tracked = append(r.uow.tracked, n)
	return nil
}

func (r memoryNoteRepo) Get(_ context.Context, id kernel.UUID) (*dispatch.Note, error) {
	tx, err := r.uow.state()
	if err != nil {
		return nil, err
	}
	row, ok := tx.notes[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("dispatchID", id)
	}
	return dispatch.RestoreNote(row)
}

func (r memoryNoteRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*dispatch.Note, error) {
	return r.Get(ctx, id)
}

func (r memoryNoteRepo) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*dispatch.Note, error) {
	tx, err := r.uow.state()
	if err != nil {
		return nil, err
	}
	var out []*dispatch.Note
	for _, id := range tx.noteOrder {
		if !tx.notes[id].OrderID.IsEqual(orderID) {
			continue
		}
		note, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, nil
}

type memorySequence struct{ uow *memoryUoW }

func (s memorySequence) Next(_ context.Context, window string) (int64, error) {
	tx, err := s.uow.state()
	if err != nil {
		return 0, err
	}
	tx.sequences[window]++
	return tx.sequences[window], nil
}
