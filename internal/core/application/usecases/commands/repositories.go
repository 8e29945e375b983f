// Package commands contains the operations that change ledger state.
// Every handler follows the same shape: validate the command, open a unit of
// work, lock what it reads, validate against the locked state, write, commit.
// Any failure before Commit leaves no trace.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces, narrowed per handler.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	DispatchNoteRepoFactory interface {
		DispatchNoteRepository() ports.DispatchNoteRepository
	}

	DispatchSequenceFactory interface {
		DispatchSequence() ports.DispatchSequence
	}

	// OrderUoW is used by order registration.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW is used by stock receipts.
	StockUoW interface {
		TxManager
		StockRepoFactory
	}

	StockUoWFactory interface {
		Create() StockUoW
	}

	// LedgerUoW spans everything a dispatch or a transition touches: the
	// order, its notes, the stock rows and the number sequence.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   stocks, err := uow.StockRepository().GetForUpdate(ctx, catalogItemIDs...)
	//   // ... validate, mutate, persist
	//
	//   err = uow.Commit(ctx)
	LedgerUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
		DispatchNoteRepoFactory
		DispatchSequenceFactory
	}

	LedgerUoWFactory interface {
		Create() LedgerUoW
	}
)
