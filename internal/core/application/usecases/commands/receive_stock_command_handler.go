package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"
)

// ReceiveStockCommandHandler adds received units to a catalog item's stock,
// creating the stock row on the first receipt.
type ReceiveStockCommandHandler struct {
	uowFactory StockUoWFactory
}

func NewReceiveStockCommandHandler(uowFactory StockUoWFactory) ReceiveStockCommandHandler {
	return ReceiveStockCommandHandler{uowFactory: uowFactory}
}

// Handle returns the stock after the receipt. Two first receipts racing for
// the same new item end with one of them failing on errs.ErrObjectConflict;
// retrying it succeeds.
func (h ReceiveStockCommandHandler) Handle(ctx context.Context, cmd ReceiveStockCommand) (*inventory.Stock, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StockRepository()
	locked, err := repo.GetForUpdate(ctx, cmd.CatalogItemID())

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		stock, newErr := inventory.NewStock(cmd.CatalogItemID(), cmd.Quantity())
		if newErr != nil {
			return nil, newErr
		}
		if err = repo.Add(ctx, stock); err != nil {
			return nil, err
		}
		locked = []*inventory.Stock{stock}
	case err != nil:
		return nil, err
	default:
		if err = locked[0].Restock(cmd.Quantity()); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, locked[0]); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return locked[0], nil
}
