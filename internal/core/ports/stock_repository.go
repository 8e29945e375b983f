package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// StockRepository persists per catalog item available quantities.
type StockRepository interface {
	// Add persists a new stock row. A duplicate catalog item fails with
	// errs.ErrObjectConflict.
	Add(ctx context.Context, stock *inventory.Stock) error

	Update(ctx context.Context, stock *inventory.Stock) error

	Get(ctx context.Context, catalogItemID kernel.UUID) (*inventory.Stock, error)

	// GetForUpdate locks the stock rows of the given catalog items in
	// ascending catalog item ID order and returns them in that order.
	// Duplicate IDs are collapsed. Any missing row fails the whole call with
	// errs.ErrObjectNotFound.
	GetForUpdate(ctx context.Context, catalogItemIDs ...kernel.UUID) ([]*inventory.Stock, error)
}
