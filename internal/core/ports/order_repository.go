// Package ports defines the contracts between the ledger core and its
// infrastructure: repositories bound to a transaction, the dispatch number
// sequence and the event publisher.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add persists a new order with its line items. A duplicate ID fails with
	// errs.ErrObjectConflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order status and cached dispatched quantity. Line
	// items are immutable once added.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order without locking. Missing orders fail with
	// errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate reads an order and holds a row lock on it until the
	// transaction ends. Every ledger write locks the order first.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
