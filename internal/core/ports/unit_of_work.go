package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one ledger transaction. Client code drives the lifecycle
// explicitly:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	// ... lock, validate, mutate
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	StockRepository() StockRepository
	DispatchNoteRepository() DispatchNoteRepository

	// DispatchSequence returns the numbering source used by this transaction.
	DispatchSequence() DispatchSequence
}
